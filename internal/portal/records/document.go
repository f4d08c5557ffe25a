package records

import (
	"encoding/json"
	"net/url"
	"strings"
)

// Document types as the server stores them.
const (
	DocResume      = "RESUME"
	DocMarksCard   = "MARKSCARD"
	DocIDProof     = "IDPROOF"
	DocOfferLetter = "OFFERLETTER"
)

var DocumentTypes = []string{DocResume, DocMarksCard, DocIDProof, DocOfferLetter}

var documentLabels = map[string]string{
	DocResume:      "Resume",
	DocMarksCard:   "Marks Card",
	DocIDProof:     "ID Proof",
	DocOfferLetter: "Offer Letter",
}

// DocumentLabel is the card title for a document type.
func DocumentLabel(docType string) string {
	if label, ok := documentLabels[strings.ToUpper(docType)]; ok {
		return label
	}
	return docType
}

// Document is the metadata of one of an employee's files.
type Document struct {
	ID           int64
	EmployeeID   string
	DocumentType string
	Name         string
	FileType     string
	Size         int64
}

func DocumentKey(d Document) int64 { return d.ID }

// DownloadPath is the path of d's file below /api/hr.
func (d Document) DownloadPath() string {
	return "download/" + url.PathEscape(d.EmployeeID) + "/" + url.PathEscape(strings.ToUpper(d.DocumentType))
}

type documentWire struct {
	ID               int64  `json:"id,omitempty"`
	EmployeeID       string `json:"employeeId"`
	DocumentType     string `json:"documentType"`
	OriginalFileName string `json:"originalFileName"`
	FileType         string `json:"fileType"`
	Size             int64  `json:"size"`
}

type DocumentMapper struct{}

func (DocumentMapper) Decode(raw json.RawMessage) (Document, error) {
	var w documentWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Document{}, err
	}
	return Document{
		ID:           w.ID,
		EmployeeID:   w.EmployeeID,
		DocumentType: strings.ToUpper(w.DocumentType),
		Name:         w.OriginalFileName,
		FileType:     w.FileType,
		Size:         w.Size,
	}, nil
}

func (DocumentMapper) Encode(d Document) ([]byte, error) {
	return json.Marshal(documentWire{
		EmployeeID:       d.EmployeeID,
		DocumentType:     d.DocumentType,
		OriginalFileName: d.Name,
		FileType:         d.FileType,
		Size:             d.Size,
	})
}
