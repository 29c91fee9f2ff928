package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"sort"

	"realty-client/internal/models"
)

// Multipart is a form body with optional file parts.
type Multipart struct {
	Fields map[string]string
	Files  []models.Upload
}

func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("multipart field %s: %w", k, err)
		}
	}

	for _, f := range m.Files {
		part, err := w.CreateFormFile(f.FieldName, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("multipart file %s: %w", f.FileName, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("multipart file %s: %w", f.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
