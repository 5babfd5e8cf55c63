package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// FieldError reports a validation failure scoped to one request field.
func FieldError(field, message string) Envelope {
	return Envelope{"error": message, "field": field}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
