package entities

// Media types supported by recipes.
const (
	MediaTypeISO = "iso"
	MediaTypeESD = "esd"
)

// MediaRecipe describes one piece of Windows installation media and how to obtain it
type MediaRecipe struct {
	Name        string
	Description string
	MediaType   string // "iso" or "esd"
	Catalog     CatalogConfig
	Selection   SelectionCriteria
	ISO         ISOSourceConfig
	Output      OutputConfig
	Security    SecurityConfig
	Convert     ConvertConfig
}

// CatalogConfig points at the vendor catalog for ESD media
type CatalogConfig struct {
	URL      string // CAB download endpoint
	Document string // document name inside the CAB, e.g. "products.xml"
}

// ISOSourceConfig describes how to locate a direct ISO download URL
type ISOSourceConfig struct {
	Endpoints   []string // API endpoints scanned for ISO URLs and LinkIDs
	MirrorBases []string // CDN base URLs probed with known file names
	FileNames   []string // known ISO file names, tried against each base
	FallbackURL string   // last-resort evaluation link
}

// OutputConfig names the files written to the output directory
type OutputConfig struct {
	ISOFile string
	ESDFile string
	WIMFile string
}

// SecurityConfig controls optional verification of downloaded media
type SecurityConfig struct {
	VerifyChecksum  bool // check the catalog-published hash after download
	VerifySignature bool
	SignatureURL    string
	GPGKeyIDs       []string
	GPGKeysURL      string
}

// ConvertConfig names the external tools used for unpacking and conversion
type ConvertConfig struct {
	UnpackTool     string // default "cabextract"
	ConvertTool    string // default "wimlib-imagex"
	TimeoutMinutes int
}

// DefaultISORecipe returns the built-in evaluation ISO recipe used when no
// recipe file is given. Endpoint and mirror lists cover the known layouts of
// Microsoft's evaluation center and its static CDN.
func DefaultISORecipe() *MediaRecipe {
	return &MediaRecipe{
		Name:        "windows-enterprise-eval",
		Description: "Windows Enterprise evaluation ISO from Microsoft's CDN",
		MediaType:   MediaTypeISO,
		ISO: ISOSourceConfig{
			Endpoints: []string{
				"https://www.microsoft.com/en-us/evalcenter/api/products/getproducts",
				"https://www.microsoft.com/en-us/api/controls/contentinclude/html?pageId=cfa0e580-a81e-4a4b-a846-7b21bf4e2e5b&host=www.microsoft.com&segments=software-download,windows10ISO",
				"https://www.microsoft.com/en-us/software-download/windows10ISO/ajax",
			},
			MirrorBases: []string{
				"https://software-static.download.prss.microsoft.com/sg/download/888969d5-f34g-4e03-ac9d-1f9786c66749/",
				"https://software-static.download.prss.microsoft.com/dbazure/",
				"https://software.download.prss.microsoft.com/sg/",
			},
			FileNames: []string{
				"19045.2006.220908-0225.22h2_release_svc_refresh_CLIENTENTERPRISEEVAL_OEMRET_x64FRE_en-us.iso",
				"Win10_22H2_EnterpriseEval_x64.iso",
				"Win10_22H2_English_x64.iso",
				"Win10_22H2_English_x64v1.iso",
				"SERVER_EVAL_x64FRE_en-us.iso",
			},
			FallbackURL: "https://go.microsoft.com/fwlink/?LinkID=2195280&clcid=0x409&culture=en-us&country=US",
		},
		Output: OutputConfig{ISOFile: "win.iso"},
	}
}

// DefaultESDRecipe returns the built-in Enterprise N ESD recipe used when no
// recipe file is given.
func DefaultESDRecipe() *MediaRecipe {
	return &MediaRecipe{
		Name:        "windows-enterprise-n",
		Description: "Windows Enterprise N ESD from the Microsoft product catalog",
		MediaType:   MediaTypeESD,
		Catalog: CatalogConfig{
			URL:      "https://go.microsoft.com/fwlink/?LinkId=2156292",
			Document: "products.xml",
		},
		Selection: SelectionCriteria{
			Language:     "en-us",
			Edition:      "EnterpriseN",
			Architecture: "x64",
		},
		Output: OutputConfig{
			ESDFile: "win.esd",
			WIMFile: "win.wim",
		},
		Security: SecurityConfig{VerifyChecksum: true},
		Convert: ConvertConfig{
			UnpackTool:  "cabextract",
			ConvertTool: "wimlib-imagex",
		},
	}
}
