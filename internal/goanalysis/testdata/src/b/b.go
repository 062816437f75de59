package b

func f() string {
	const message = "this string literal is long enough to push the line past one hundred and twenty characters" // want "Exceeds maximum line length of 120 characters."
	return message
}
