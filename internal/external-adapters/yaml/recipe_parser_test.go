package yaml

import (
	"strings"
	"testing"
)

func TestRecipeParser_Parse_ValidESD(t *testing.T) {
	parser := NewRecipeParser()
	yamlData := []byte(`name: windows-enterprise-n
description: Windows Enterprise N ESD
media_type: esd
catalog:
  url: https://go.microsoft.com/fwlink/?LinkId=2156292
  document: products.xml
selection:
  language: en-us
  edition: EnterpriseN
  architecture: x64
output:
  esd_file: win.esd
  wim_file: win.wim
security:
  verify_checksum: true
convert:
  unpack_tool: cabextract
  convert_tool: wimlib-imagex
  timeout_minutes: 90
`)

	recipe, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if recipe.Name != "windows-enterprise-n" {
		t.Errorf("Name = %v, want windows-enterprise-n", recipe.Name)
	}
	if recipe.MediaType != "esd" {
		t.Errorf("MediaType = %v, want esd", recipe.MediaType)
	}
	if recipe.Selection.Edition != "EnterpriseN" {
		t.Errorf("Selection.Edition = %v, want EnterpriseN", recipe.Selection.Edition)
	}
	if !recipe.Security.VerifyChecksum {
		t.Error("Security.VerifyChecksum should be true")
	}
	if recipe.Convert.TimeoutMinutes != 90 {
		t.Errorf("Convert.TimeoutMinutes = %d, want 90", recipe.Convert.TimeoutMinutes)
	}
}

func TestRecipeParser_Parse_ValidISO(t *testing.T) {
	parser := NewRecipeParser()
	yamlData := []byte(`name: windows-enterprise-eval
media_type: iso
iso:
  endpoints:
    - https://www.microsoft.com/en-us/evalcenter/api/products/getproducts
  mirror_bases:
    - https://software-static.download.prss.microsoft.com/sg/
  file_names:
    - Win10_22H2_EnterpriseEval_x64.iso
  fallback_url: https://go.microsoft.com/fwlink/?LinkID=2195280
`)

	recipe, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(recipe.ISO.Endpoints) != 1 {
		t.Errorf("ISO.Endpoints count = %d, want 1", len(recipe.ISO.Endpoints))
	}
	if recipe.ISO.FallbackURL == "" {
		t.Error("ISO.FallbackURL should be set")
	}
}

func TestRecipeParser_Parse_Defaults(t *testing.T) {
	parser := NewRecipeParser()
	yamlData := []byte(`name: minimal
media_type: esd
catalog:
  url: https://example.com/catalog.cab
`)

	recipe, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if recipe.Catalog.Document != "products.xml" {
		t.Errorf("Catalog.Document = %v, want products.xml", recipe.Catalog.Document)
	}
	if recipe.Output.ESDFile != "win.esd" {
		t.Errorf("Output.ESDFile = %v, want win.esd", recipe.Output.ESDFile)
	}
	if recipe.Output.WIMFile != "win.wim" {
		t.Errorf("Output.WIMFile = %v, want win.wim", recipe.Output.WIMFile)
	}
	if recipe.Convert.UnpackTool != "cabextract" {
		t.Errorf("Convert.UnpackTool = %v, want cabextract", recipe.Convert.UnpackTool)
	}
	if recipe.Convert.ConvertTool != "wimlib-imagex" {
		t.Errorf("Convert.ConvertTool = %v, want wimlib-imagex", recipe.Convert.ConvertTool)
	}
}

func TestRecipeParser_Parse_MissingName(t *testing.T) {
	parser := NewRecipeParser()

	_, err := parser.Parse([]byte(`media_type: iso`))
	if err == nil {
		t.Fatal("Parse() should fail without a name")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("error = %v, want mention of name", err)
	}
}

func TestRecipeParser_Parse_BadMediaType(t *testing.T) {
	parser := NewRecipeParser()

	_, err := parser.Parse([]byte("name: broken\nmedia_type: wim\n"))
	if err == nil {
		t.Fatal("Parse() should fail for unknown media_type")
	}
}

func TestRecipeParser_Parse_ESDWithoutCatalog(t *testing.T) {
	parser := NewRecipeParser()

	_, err := parser.Parse([]byte("name: broken\nmedia_type: esd\n"))
	if err == nil {
		t.Fatal("Parse() should fail for esd recipe without catalog url")
	}
}

func TestRecipeParser_Parse_InvalidYAML(t *testing.T) {
	parser := NewRecipeParser()

	_, err := parser.Parse([]byte("name: [unclosed"))
	if err == nil {
		t.Fatal("Parse() should fail for invalid YAML")
	}
}
