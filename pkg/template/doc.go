/*
Package template parses and formats the line-oriented templates grammar and
fans documents out into the templates.ini / morphs.ini pair.

	# any comment
	#morphs=pluginA.esm;pluginB.esm
	Preset1=BigButt@0.5,Breasts@1
	Preset2=Waist@-0.2

Each "#morphs=" directive sets the current rule key (which may be a
";"-separated compound key). Every later "name=value" line is appended under
that key. Lines before the first directive, lines without "=", blank lines and
other "#" lines are ignored. An empty directive is a GrammarError that cites
its 1-based line number.
*/
package template
