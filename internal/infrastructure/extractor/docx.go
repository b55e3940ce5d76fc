package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/BasharShoumali/socratia-1/internal/core/domain"
)

// extractDOCX reads word/document.xml out of the zipped WordprocessingML
// container and concatenates the <w:t> text runs, one line per paragraph.
func extractDOCX(raw []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract docx", err)
	}

	var docXML io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", domain.WrapError(domain.ErrExtraction, "extract docx", err)
			}
			break
		}
	}
	if docXML == nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract docx", errors.New("word/document.xml missing"))
	}
	defer docXML.Close()

	text, err := wordprocessingText(docXML)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "extract docx", err)
	}
	return text, nil
}

func wordprocessingText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	var inTextRun bool
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			inTextRun = tok.Name.Local == "t"
		case xml.EndElement:
			inTextRun = false
			if tok.Name.Local == "p" {
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				sb.Write(tok)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
