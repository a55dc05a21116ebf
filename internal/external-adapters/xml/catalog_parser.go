// Package xml parses the Microsoft product catalog document into domain entities.
package xml

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	"github.com/mkrail/winmedia/internal/domain/entities"
)

// xmlFile represents one raw <File> element of products.xml
type xmlFile struct {
	FileName     string `xml:"FileName"`
	LanguageCode string `xml:"LanguageCode"`
	Language     string `xml:"Language"`
	Edition      string `xml:"Edition"`
	Architecture string `xml:"Architecture"`
	Size         int64  `xml:"Size"`
	Sha1         string `xml:"Sha1"`
	FilePath     string `xml:"FilePath"`
}

// CatalogParser parses catalog XML documents
type CatalogParser struct{}

// NewCatalogParser creates a new catalog parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// ParseFile parses a catalog document from disk
func (p *CatalogParser) ParseFile(filePath string) ([]entities.CatalogEntry, error) {
	//nolint:gosec // G304: filePath is the extracted catalog document path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &entities.ParseError{Source: filePath, Err: err}
	}
	return p.Parse(data)
}

// Parse parses catalog XML bytes into CatalogEntry records, preserving
// document order. <File> elements may sit at any depth; the catalog nests
// them differently across publishing channels, so the decoder walks the
// token stream instead of assuming a fixed envelope.
func (p *CatalogParser) Parse(data []byte) ([]entities.CatalogEntry, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var catalogEntries []entities.CatalogEntry
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &entities.ParseError{Source: "catalog document", Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "File" {
			continue
		}

		var raw xmlFile
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			return nil, &entities.ParseError{Source: "catalog document", Err: err}
		}

		// Entries without a download URL are unusable, skip them.
		if raw.FilePath == "" {
			continue
		}
		catalogEntries = append(catalogEntries, convertEntry(raw))
	}

	return catalogEntries, nil
}

func convertEntry(raw xmlFile) entities.CatalogEntry {
	return entities.CatalogEntry{
		FileName:     raw.FileName,
		LanguageCode: raw.LanguageCode,
		Language:     raw.Language,
		Edition:      raw.Edition,
		Architecture: raw.Architecture,
		Size:         raw.Size,
		SHA1:         raw.Sha1,
		URL:          raw.FilePath,
	}
}
