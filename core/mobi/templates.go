package mobi

import "github.com/FocuswithJustin/JuniperGlossary/core/ebook"

// Templates returns the Kindle dictionary templates. Headwords are wrapped in
// idx:entry/idx:orth so kindlegen builds a lookup index, alternates become
// idx:iform inflections, and the OPF carries the x-metadata block kindlegen
// reads the dictionary languages from.
func Templates() ebook.Templates {
	t := ebook.DefaultTemplates()
	t.CSS = "@charset \"UTF-8\";\n"
	t.GroupPage = groupPage
	t.IndexLink = "\t\t<a href=\"index.xhtml\">[ Index ]</a>"
	t.Entry = entry
	t.OPF = opf
	return t
}

const groupPage = `<?xml version="1.0" encoding="utf-8" standalone="no"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">
<html xmlns="http://www.w3.org/1999/xhtml"
	xmlns:idx="https://kindlegen.s3.amazonaws.com/AmazonKindlePublishingGuidelines.pdf">
	<head>
		<title>{{.Title}}</title>
		<link rel="stylesheet" type="text/css" href="style.css" />
	</head>
	<body id="groupPage" class="groupPage">
		<h1 class="groupTitle">{{.GroupTitle}}</h1>
		<div class="groupNavigation">
			<a href="{{.PreviousLink}}">[ Previous ]</a>
{{.IndexLink}}
			<a href="{{.NextLink}}">[ Next ]</a>
		</div>
{{.Contents}}
	</body>
</html>`

const entry = `	<div class="groupEntry">
		<idx:entry>
			<h2 class="groupHeadword"><idx:orth>{{.Headword}}{{if .Alts}}<idx:infl>{{range .Alts}}<idx:iform value="{{.}}" />{{end}}</idx:infl>{{end}}</idx:orth></h2>
			<p class="groupDefinition">{{.Definition}}</p>
		</idx:entry>
	</div>`

const opf = `<?xml version="1.0" encoding="utf-8"?>
<package unique-identifier="uid">
	<metadata>
		<dc-metadata xmlns:dc="http://purl.org/metadata/dublin_core"
			xmlns:oebpackage="http://openebook.org/namespaces/oeb-package/1.0/">
			<dc:Title>{{.Title}}</dc:Title>
			<dc:Language>{{.SourceLang}}</dc:Language>
			<dc:Identifier id="uid">{{.Identifier}}</dc:Identifier>
			<dc:Creator>{{.Creator}}</dc:Creator>
			<dc:Rights>{{.Copyright}}</dc:Rights>
			<dc:Subject BASICCode="REF008000">Dictionaries</dc:Subject>
		</dc-metadata>
		<x-metadata>
			<output encoding="utf-8"></output>
			<DictionaryInLanguage>{{.SourceLang}}</DictionaryInLanguage>
			<DictionaryOutLanguage>{{.TargetLang}}</DictionaryOutLanguage>
			<EmbeddedCover>{{.Cover}}</EmbeddedCover>
		</x-metadata>
	</metadata>
	<manifest>
{{.Manifest}}
	</manifest>
	<spine>
{{.Spine}}
	</spine>
	<tours></tours>
	<guide></guide>
</package>`
