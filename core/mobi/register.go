package mobi

import (
	"context"

	"github.com/FocuswithJustin/JuniperGlossary/core/glossary"
	"github.com/FocuswithJustin/JuniperGlossary/core/options"
	"github.com/FocuswithJustin/JuniperGlossary/core/plugins"
)

func init() {
	plugins.MustRegister(Format())
}

// Format returns the registry entry for the mobi writer.
func Format() *plugins.Format {
	return &plugins.Format{
		Name:            "Mobi",
		Lname:           "mobi",
		Description:     "Mobipocket (.mobi) E-Book",
		Extensions:      []string{".mobi"},
		ExtensionCreate: ".mobi",
		Kind:            plugins.KindPackage,
		SortOnWrite:     true,
		Wiki:            "https://en.wikipedia.org/wiki/Mobipocket",
		Tools: []plugins.Tool{
			{
				Name:      "Amazon Kindle",
				Web:       "https://www.amazon.com/kindle",
				Platforms: []string{"Amazon Kindle"},
				License:   "Proprietary",
			},
			{
				Name:      "calibre",
				Web:       "https://calibre-ebook.com/",
				Wiki:      "https://en.wikipedia.org/wiki/Calibre_(software)",
				Repo:      "https://github.com/kovidgoyal/calibre",
				Platforms: []string{"Linux", "Windows", "Mac"},
				License:   "GPL",
			},
			{
				Name:      "Okular",
				Web:       "https://okular.kde.org/",
				Wiki:      "https://en.wikipedia.org/wiki/Okular",
				Repo:      "https://invent.kde.org/graphics/okular",
				Platforms: []string{"Linux", "Windows", "Mac"},
				License:   "GPL",
			},
			{
				Name:      "Book Reader",
				Web:       "https://f-droid.org/en/packages/com.github.axet.bookreader/",
				Repo:      "https://gitlab.com/axet/android-book-reader",
				Platforms: []string{"Android"},
				License:   "GPL",
			},
		},
		Options: Schema,
		ExtraDocs: []plugins.Doc{
			{
				Title: "Other Requirements",
				Body:  "Install [KindleGen](https://wiki.mobileread.com/wiki/KindleGen) for creating Mobipocket e-books.",
			},
		},
		NewWriter: newPluginWriter,
	}
}

type pluginWriter struct {
	w *Writer
}

func newPluginWriter(glos *glossary.Glossary, values options.Values) (plugins.Writer, error) {
	cfg, err := ConfigFromOptions(values)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(glos, cfg)
	if err != nil {
		return nil, err
	}
	return &pluginWriter{w: w}, nil
}

func (p *pluginWriter) Write(ctx context.Context, outputDir string) (*plugins.Output, error) {
	res, err := p.w.Write(ctx, outputDir)
	if res == nil {
		return nil, err
	}
	return &plugins.Output{
		Path:      res.OutputPath(),
		Compiled:  res.Compile.Compiled(),
		Files:     len(res.Tree.Files),
		Checksums: res.Checksums,
		Digest:    artifactDigest(res.Compile),
	}, err
}

func artifactDigest(c *CompileResult) string {
	if !c.Compiled() {
		return ""
	}
	return c.ArtifactBLAKE3
}
