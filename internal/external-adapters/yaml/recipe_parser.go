// Package yaml provides YAML-based media recipe parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"

	"github.com/mkrail/winmedia/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlRecipe represents the raw YAML structure
type yamlRecipe struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	MediaType   string        `yaml:"media_type"`
	Catalog     yamlCatalog   `yaml:"catalog"`
	Selection   yamlSelection `yaml:"selection"`
	ISO         yamlISOSource `yaml:"iso"`
	Output      yamlOutput    `yaml:"output"`
	Security    yamlSecurity  `yaml:"security"`
	Convert     yamlConvert   `yaml:"convert"`
}

type yamlCatalog struct {
	URL      string `yaml:"url"`
	Document string `yaml:"document"`
}

type yamlSelection struct {
	Language     string `yaml:"language"`
	Edition      string `yaml:"edition"`
	Architecture string `yaml:"architecture"`
}

type yamlISOSource struct {
	Endpoints   []string `yaml:"endpoints"`
	MirrorBases []string `yaml:"mirror_bases"`
	FileNames   []string `yaml:"file_names"`
	FallbackURL string   `yaml:"fallback_url"`
}

type yamlOutput struct {
	ISOFile string `yaml:"iso_file"`
	ESDFile string `yaml:"esd_file"`
	WIMFile string `yaml:"wim_file"`
}

type yamlSecurity struct {
	VerifyChecksum  bool     `yaml:"verify_checksum"`
	VerifySignature bool     `yaml:"verify_signature"`
	SignatureURL    string   `yaml:"signature_url"`
	GPGKeyIDs       []string `yaml:"gpg_key_ids"`
	GPGKeysURL      string   `yaml:"gpg_keys_url"`
}

type yamlConvert struct {
	UnpackTool     string `yaml:"unpack_tool"`
	ConvertTool    string `yaml:"convert_tool"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

// RecipeParser parses YAML media recipe files
type RecipeParser struct{}

// NewRecipeParser creates a new YAML parser
func NewRecipeParser() *RecipeParser {
	return &RecipeParser{}
}

// ParseFile parses a YAML recipe file into a MediaRecipe entity
func (p *RecipeParser) ParseFile(filePath string) (*entities.MediaRecipe, error) {
	//nolint:gosec // G304: filePath is a recipe path from the repository
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a MediaRecipe entity
func (p *RecipeParser) Parse(data []byte) (*entities.MediaRecipe, error) {
	var raw yamlRecipe
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate required fields
	if raw.Name == "" {
		return nil, fmt.Errorf("recipe must have a name")
	}
	if raw.MediaType != entities.MediaTypeISO && raw.MediaType != entities.MediaTypeESD {
		return nil, fmt.Errorf("recipe %s: media_type must be %q or %q, got %q",
			raw.Name, entities.MediaTypeISO, entities.MediaTypeESD, raw.MediaType)
	}
	if raw.MediaType == entities.MediaTypeESD && raw.Catalog.URL == "" {
		return nil, fmt.Errorf("recipe %s: esd media requires a catalog url", raw.Name)
	}

	recipe := &entities.MediaRecipe{
		Name:        raw.Name,
		Description: raw.Description,
		MediaType:   raw.MediaType,
		Catalog:     convertCatalog(raw.Catalog),
		Selection:   convertSelection(raw.Selection),
		ISO:         convertISOSource(raw.ISO),
		Output:      convertOutput(raw.Output),
		Security:    convertSecurity(raw.Security),
		Convert:     convertConvert(raw.Convert),
	}

	applyDefaults(recipe)
	return recipe, nil
}

func convertCatalog(yc yamlCatalog) entities.CatalogConfig {
	return entities.CatalogConfig{
		URL:      yc.URL,
		Document: yc.Document,
	}
}

func convertSelection(ys yamlSelection) entities.SelectionCriteria {
	return entities.SelectionCriteria{
		Language:     ys.Language,
		Edition:      ys.Edition,
		Architecture: ys.Architecture,
	}
}

func convertISOSource(yi yamlISOSource) entities.ISOSourceConfig {
	return entities.ISOSourceConfig{
		Endpoints:   yi.Endpoints,
		MirrorBases: yi.MirrorBases,
		FileNames:   yi.FileNames,
		FallbackURL: yi.FallbackURL,
	}
}

func convertOutput(yo yamlOutput) entities.OutputConfig {
	return entities.OutputConfig{
		ISOFile: yo.ISOFile,
		ESDFile: yo.ESDFile,
		WIMFile: yo.WIMFile,
	}
}

func convertSecurity(ys yamlSecurity) entities.SecurityConfig {
	return entities.SecurityConfig{
		VerifyChecksum:  ys.VerifyChecksum,
		VerifySignature: ys.VerifySignature,
		SignatureURL:    ys.SignatureURL,
		GPGKeyIDs:       ys.GPGKeyIDs,
		GPGKeysURL:      ys.GPGKeysURL,
	}
}

func convertConvert(yc yamlConvert) entities.ConvertConfig {
	return entities.ConvertConfig{
		UnpackTool:     yc.UnpackTool,
		ConvertTool:    yc.ConvertTool,
		TimeoutMinutes: yc.TimeoutMinutes,
	}
}

// applyDefaults fills output file names and tool names the original scripts
// hard-coded, so recipes only state what differs.
func applyDefaults(r *entities.MediaRecipe) {
	if r.Catalog.Document == "" {
		r.Catalog.Document = "products.xml"
	}
	if r.Output.ISOFile == "" {
		r.Output.ISOFile = "win.iso"
	}
	if r.Output.ESDFile == "" {
		r.Output.ESDFile = "win.esd"
	}
	if r.Output.WIMFile == "" {
		r.Output.WIMFile = "win.wim"
	}
	if r.Convert.UnpackTool == "" {
		r.Convert.UnpackTool = "cabextract"
	}
	if r.Convert.ConvertTool == "" {
		r.Convert.ConvertTool = "wimlib-imagex"
	}
}
