package upload

// Config controls validation and the fields reported for a stored file.
// Empty optional field names are not reported.
type Config struct {
	MaxSize      int64    `env:"UPLOAD_MAX_SIZE" envDefault:"10485760"`
	AllowedTypes []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:","`
	// Prefix of storage keys. Defaults to the resource type of the request.
	Prefix string `env:"UPLOAD_PREFIX"`

	URLField  string `env:"UPLOAD_URL_FIELD" envDefault:"fileUrl"`
	NameField string `env:"UPLOAD_NAME_FIELD"`
	SizeField string `env:"UPLOAD_SIZE_FIELD"`
	MIMEField string `env:"UPLOAD_MIME_FIELD"`
}

// DefaultURLField is used when Config.URLField is empty.
const DefaultURLField = "fileUrl"
