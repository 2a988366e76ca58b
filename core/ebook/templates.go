package ebook

// Templates holds the text/template sources used to render the tree.
// Field values passed to the templates are already XML-escaped, except
// definitions and pre-rendered fragments (Contents, Manifest, Spine, ...).
type Templates struct {
	CSS string
	// GroupPage receives .Title .GroupTitle .PreviousLink .NextLink
	// .IndexLink and .Contents.
	GroupPage string
	// IndexLink is inserted as .IndexLink when the index page is enabled.
	IndexLink string
	// Entry receives .Headword .Alts and .Definition.
	Entry string
	// IndexPage receives .Title and .Links.
	IndexPage string
	// NCX receives .Identifier .Title and .NavPoints.
	NCX string
	// OPF receives .Title .SourceLang .TargetLang .Identifier .Creator
	// .Copyright .Cover .Manifest and .Spine.
	OPF string
}

func (t Templates) isZero() bool {
	return t == Templates{}
}

// DefaultTemplates returns plain XHTML 1.1 / OPF 2.0 templates.
func DefaultTemplates() Templates {
	return Templates{
		CSS:       defaultCSS,
		GroupPage: defaultGroupPage,
		IndexLink: "\t\t\t<a href=\"index.xhtml\">[ Index ]</a>",
		Entry:     defaultEntry,
		IndexPage: defaultIndexPage,
		NCX:       defaultNCX,
		OPF:       defaultOPF,
	}
}

const defaultCSS = `@charset "UTF-8";
body {
  margin: 1em;
}
.groupEntry {
  margin-bottom: 0.5em;
}
.groupHeadword {
  font-size: 1.1em;
  margin: 0;
}
`

const defaultGroupPage = `<?xml version="1.0" encoding="utf-8" standalone="no"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
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

const defaultEntry = `	<div class="groupEntry">
		<h2 class="groupHeadword">{{.Headword}}</h2>
		<p class="groupDefinition">{{.Definition}}</p>
	</div>`

const defaultIndexPage = `<?xml version="1.0" encoding="utf-8" standalone="no"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
	<head>
		<title>{{.Title}}</title>
		<link rel="stylesheet" type="text/css" href="style.css" />
	</head>
	<body class="indexPage">
		<h1 class="indexTitle">{{.Title}}</h1>
		<ul class="indexGroups">
{{.Links}}
		</ul>
	</body>
</html>`

const defaultNCX = `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
	<head>
		<meta name="dtb:uid" content="{{.Identifier}}" />
		<meta name="dtb:depth" content="1" />
		<meta name="dtb:totalPageCount" content="0" />
		<meta name="dtb:maxPageNumber" content="0" />
	</head>
	<docTitle><text>{{.Title}}</text></docTitle>
	<navMap>
{{.NavPoints}}
	</navMap>
</ncx>`

const defaultOPF = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="uid">
	<metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
		<dc:title>{{.Title}}</dc:title>
		<dc:language>{{.SourceLang}}</dc:language>
		<dc:identifier id="uid">{{.Identifier}}</dc:identifier>
		<dc:creator>{{.Creator}}</dc:creator>
		<dc:rights>{{.Copyright}}</dc:rights>
	</metadata>
	<manifest>
{{.Manifest}}
	</manifest>
	<spine toc="toc">
{{.Spine}}
	</spine>
</package>`
