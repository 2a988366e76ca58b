package xml

import (
	"fmt"
	"os"
	"strings"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
)

// ManifestInfo summarizes a verified OPF package document.
type ManifestInfo struct {
	UniqueID  string
	Title     string
	Items     int
	SpineRefs int
}

// VerifyManifest checks that the OPF file at path is well-formed and carries
// the package structure kindlegen requires: metadata, manifest and spine
// sections, and an identifier element referenced by unique-identifier.
func VerifyManifest(path string) (*ManifestInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("manifest", path)
		}
		return nil, errors.NewIO("read", path, err)
	}
	return VerifyManifestData(path, data)
}

// VerifyManifestData is VerifyManifest over in-memory content; path is only
// used in error messages.
func VerifyManifestData(path string, data []byte) (*ManifestInfo, error) {
	if res := Validate(data); !res.Valid {
		msg := "not well-formed"
		if len(res.Errors) > 0 {
			msg = res.Errors[0].Message
		}
		return nil, errors.NewParse("OPF", path, msg)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, &errors.ParseError{Format: "OPF", Path: path, Message: err.Error(), Err: err}
	}

	pkg, err := doc.XPathFirst("/package")
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, errors.NewParse("OPF", path, "root element is not <package>")
	}

	for _, section := range []string{"metadata", "manifest", "spine"} {
		n, err := doc.XPathFirst("/package/" + section)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, errors.NewParse("OPF", path, fmt.Sprintf("missing <%s>", section))
		}
	}

	info := &ManifestInfo{}

	uidRef := pkg.Attr("unique-identifier")
	if uidRef == "" {
		return nil, errors.NewParse("OPF", path, "package has no unique-identifier")
	}
	idNode, err := doc.XPathFirst(fmt.Sprintf("/package/metadata//*[@id='%s']", uidRef))
	if err != nil {
		return nil, err
	}
	info.UniqueID = strings.TrimSpace(idNode.Text())
	if info.UniqueID == "" {
		return nil, errors.NewParse("OPF", path, fmt.Sprintf("identifier %q is empty or missing", uidRef))
	}

	if title, err := doc.XPathFirst("/package/metadata//*[local-name()='Title' or local-name()='title']"); err == nil {
		info.Title = strings.TrimSpace(title.Text())
	}

	items, err := doc.XPath("/package/manifest/item")
	if err != nil {
		return nil, err
	}
	refs, err := doc.XPath("/package/spine/itemref")
	if err != nil {
		return nil, err
	}
	info.Items = len(items)
	info.SpineRefs = len(refs)

	return info, nil
}
