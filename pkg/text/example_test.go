package text_test

import (
	"fmt"

	"github.com/sentgine/file/pkg/text"
)

func ExampleReplacer_Replace() {
	// Create a replacer with the default "{{ %s }}" token format
	replacer := text.NewReplacer("")

	content := []byte("Hello {{ name }}, welcome to {{ place }}!")

	result := replacer.Replace(content, map[string]string{
		"name": "World",
	})

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: Hello {{ name }}, welcome to {{ place }}!
	// Modified: Hello World, welcome to {{ place }}!
	// Changes: 1
	// Was Modified: true
}

func ExampleReplacer_Token() {
	fmt.Println(text.NewReplacer("").Token("name"))
	fmt.Println(text.NewReplacer("${%s}").Token("name"))

	// Output:
	// {{ name }}
	// ${name}
}
