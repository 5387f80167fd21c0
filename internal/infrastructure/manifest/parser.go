// Package manifest reads Adobe CEP manifest descriptors.
package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	extensiondomain "github.com/zxpstudio/zxpman/internal/core/domain/extension"
	extensionports "github.com/zxpstudio/zxpman/internal/core/ports/extension"
)

// DescriptorRelPath is the well-known descriptor location inside an
// extension directory or package archive.
const DescriptorRelPath = "CSXS/manifest.xml"

// Parser reads CSXS/manifest.xml descriptors. Manifests are untrusted
// third-party input: parsing never resolves external entities or executes
// embedded content, and unknown elements are ignored.
type Parser struct{}

// NewParser creates a manifest parser
func NewParser() *Parser {
	return &Parser{}
}

// Read parses the descriptor under an extension directory. Returns
// extensiondomain.ErrManifestMissing when the descriptor does not exist.
func (p *Parser) Read(dir string) (*extensionports.Manifest, error) {
	descriptorPath := filepath.Join(dir, filepath.FromSlash(DescriptorRelPath))

	f, err := os.Open(descriptorPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", extensiondomain.ErrManifestMissing, descriptorPath)
		}
		return nil, &extensiondomain.ManifestParseError{Path: descriptorPath, Cause: err}
	}
	defer f.Close()

	m, err := p.Parse(f)
	if err != nil {
		return nil, &extensiondomain.ManifestParseError{Path: descriptorPath, Cause: err}
	}
	return m, nil
}

// Parse extracts bundle metadata from manifest XML. The bundle id attribute
// is required; version defaults to "0.0.0" and name defaults to the id.
func (p *Parser) Parse(r io.Reader) (*extensionports.Manifest, error) {
	decoder := xml.NewDecoder(r)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no ExtensionManifest element found")
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "ExtensionManifest" {
			// Tolerant of wrappers and processing noise around the root.
			continue
		}

		m := &extensionports.Manifest{Version: "0.0.0"}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "ExtensionBundleId":
				m.BundleID = strings.TrimSpace(attr.Value)
			case "ExtensionBundleName":
				m.Name = strings.TrimSpace(attr.Value)
			case "ExtensionBundleVersion":
				if v := strings.TrimSpace(attr.Value); v != "" {
					m.Version = v
				}
			}
		}

		if m.BundleID == "" {
			return nil, fmt.Errorf("ExtensionManifest is missing the ExtensionBundleId attribute")
		}
		if m.Name == "" {
			m.Name = m.BundleID
		}
		return m, nil
	}
}

// InstallDirName derives the directory name an extension installs under.
// Panel-specific bundle ids ("com.example.foo.panel") collapse to the main
// extension id.
func InstallDirName(bundleID string) string {
	if idx := strings.Index(bundleID, ".panel"); idx > 0 {
		return bundleID[:idx]
	}
	return bundleID
}
