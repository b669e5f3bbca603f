package sanitizer

type Strategy func(string) string

// Optional applies strategy to a patch field, leaving nil untouched.
func Optional(s *string, strategy Strategy) *string {
	if s == nil {
		return nil
	}
	out := strategy(*s)
	return &out
}
