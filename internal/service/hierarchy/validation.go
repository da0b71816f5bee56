package hierarchy

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docstash/internal/config"
	"docstash/internal/domain/services"
)

var noSlash = regexp.MustCompile(`^[^/]+$`)

// validateFolderName checks the display name rules shared by folder create
// and update requests.
func validateFolderName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(noSlash).Error("folder name cannot contain slashes"),
	)
}

func validateCreateFolderRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(noSlash).Error("folder name cannot contain slashes"),
		),
	)
}

// validateDocumentFields checks the payload rules shared by document create
// and update requests. Content type membership is checked separately against
// the registry.
func validateDocumentFields(title, content string) error {
	if err := validation.Validate(title,
		validation.Required,
		validation.Length(1, config.MaxDocumentTitleLength),
	); err != nil {
		return err
	}

	return validation.Validate(content,
		validation.Length(0, config.MaxDocumentContentBytes),
	)
}
