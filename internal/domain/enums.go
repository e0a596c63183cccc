package domain

// FileType represents the allowed file types for invoice upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// TransactionType says which side of the invoice the owner is on.
// It is always supplied by the caller and never inferred from text.
type TransactionType string

const (
	TransactionSale     TransactionType = "SALE"
	TransactionPurchase TransactionType = "PURCHASE"
)

// Valid reports whether t is SALE or PURCHASE.
func (t TransactionType) Valid() bool {
	return t == TransactionSale || t == TransactionPurchase
}

// Source identifies the upstream producer of an invoice's raw text.
type Source string

const (
	SourcePDF   Source = "PDF"
	SourceVoice Source = "VOICE"
)

// TaxRegime is the way the declared tax rate was found on the invoice.
type TaxRegime string

const (
	RegimeLabelled TaxRegime = "LABELLED"
	RegimeIGST     TaxRegime = "IGST"
	RegimeCGSTSGST TaxRegime = "CGST_SGST"
	RegimeGeneric  TaxRegime = "GENERIC"
)

// RateSource records whether a verified rate came from the lookup or the default.
type RateSource string

const (
	RateSourceLookup  RateSource = "lookup"
	RateSourceDefault RateSource = "default"
)

// InvoiceType classifies a stored invoice for return filing.
type InvoiceType string

const (
	InvoiceTypeB2B     InvoiceType = "B2B"
	InvoiceTypeB2C     InvoiceType = "B2C"
	InvoiceTypeVoice   InvoiceType = "VOICE"
	InvoiceTypeUnknown InvoiceType = "UNKNOWN"
)

const (
	// NotFound is the sentinel for a text field no extractor could locate.
	NotFound = "Not found"
	// Unknown is the sentinel for a GSTIN role that cannot be assigned.
	Unknown = "UNKNOWN"
	// DefaultGSTRate is the fallback slab used when no rate can be determined.
	DefaultGSTRate = 18.0
)
