/*
Package bodygen validates BodySlide presets against a slider catalog, turns them
into BodyGen templates, and previews their effect on a base mesh.

# Concept

The pipeline is a set of pure functions over immutable inputs:

  - tri decodes the binary morph-target format into named displacement channels.
  - catalog indexes slider descriptors per gender and groups them by category.
  - preset validates a slider list, clamping out-of-range values, dropping
    unknown sliders and inferring the body gender.
  - morph applies a slider list to a flat position buffer.
  - template parses and formats the templates.ini / morphs.ini grammar.

Engine ties them together with a shared catalog, a content-addressed TRI cache
and a registry of preview bodies.

# Usage

	cat, err := sources.LoadCatalog("sliders", "categories")
	if err != nil {
		log.Fatal(err)
	}

	eng, err := bodygen.New(bodygen.WithCatalog(cat))
	if err != nil {
		log.Fatal(err)
	}

	vp, _ := eng.ValidateDescriptor("BigButt@1.5,Breasts@0.3")
	fmt.Println(preset.BodyGenLine("Curvy", vp.Descriptor))
*/
package bodygen
