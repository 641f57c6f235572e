package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// formField is one text part; order is preserved on the wire.
type formField struct {
	name  string
	value string
}

// encodeMultipart builds a multipart body from text fields and an optional
// file under fileField.
func encodeMultipart(fields []formField, fileField string, file *Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", f.name, err)
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("creating %s part: %w", fileField, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("writing %s part: %w", fileField, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
