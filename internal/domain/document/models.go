package document

import (
	"strings"
	"time"
)

// Document types are stored upper-case.
const (
	TypeResume      = "RESUME"
	TypeMarksCard   = "MARKSCARD"
	TypeIDProof     = "IDPROOF"
	TypeOfferLetter = "OFFERLETTER"
)

var Types = []string{TypeResume, TypeMarksCard, TypeIDProof, TypeOfferLetter}

// MaxFileBytes caps one uploaded file. The request body limit still
// applies to the whole multipart body.
const MaxFileBytes = 1 << 20

// Document is the metadata of one stored file. An employee holds at most
// one document per type; uploading again replaces it.
type Document struct {
	ID               int64     `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	DocumentType     string    `json:"documentType"`
	OriginalFileName string    `json:"originalFileName"`
	FileType         string    `json:"fileType"`
	Size             int64     `json:"size"`
	FileDownloadURI  string    `json:"fileDownloadUri"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

// File is a document together with its bytes.
type File struct {
	Document
	Content []byte
}

// Upload is one incoming file for an employee and type.
type Upload struct {
	EmployeeID   string
	DocumentType string
	FileName     string
	FileType     string
	Content      []byte
}

// NormalizeType maps "marksCard", "marks card" or "MARKSCARD" to the
// stored form.
func NormalizeType(value string) string {
	return strings.ToUpper(strings.Join(strings.Fields(value), ""))
}

// DownloadPath is the API path serving the employee's file of docType.
func DownloadPath(employeeID, docType string) string {
	return "/api/hr/download/" + employeeID + "/" + docType
}
