package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thcfit/shipping-gateway/internal/shipment"
)

// Multipart field names of the booking form.
const (
	formField       = "form"
	attachmentField = "attachment"
)

var errFormMissing = errors.New(`multipart request has no "form" field`)

// bindShipmentForm reads the booking form from a JSON body or from a
// multipart body whose "form" field holds the same JSON. A multipart
// "attachment" file is read lazily by the payload builder.
func bindShipmentForm(c *gin.Context) (shipment.Form, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		var form shipment.Form
		if err := NewRequestBuilder(c).Bind(&form); err != nil {
			return shipment.Form{}, err
		}
		return form, nil
	}

	raw := strings.TrimSpace(c.PostForm(formField))
	if raw == "" {
		return shipment.Form{}, errFormMissing
	}
	form, err := UnmarshalFromBytes[shipment.Form]([]byte(raw))
	if err != nil {
		return shipment.Form{}, fmt.Errorf("invalid form JSON: %w", err)
	}

	header, err := c.FormFile(attachmentField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return shipment.Form{}, fmt.Errorf("invalid attachment: %w", err)
	default:
		form.Attachment = uploadedAttachment(header)
	}
	return *form, nil
}

func uploadedAttachment(header *multipart.FileHeader) *shipment.Attachment {
	return &shipment.Attachment{
		Name: header.Filename,
		Open: func() (io.ReadCloser, error) {
			f, err := header.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}
