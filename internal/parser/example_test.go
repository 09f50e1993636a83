package parser_test

import (
	"context"
	"fmt"
	"log"

	"github.com/coder26-cmd/anti-plagiarism/internal/parser"
)

func ExampleParser_ParseTree() {
	p := parser.New()
	ctx := context.Background()

	source := []byte(`def greet(name):
    return f"Hello, {name}!"

print(greet("World"))`)

	root, err := p.ParseTree(ctx, source)
	if err != nil {
		log.Fatal(err)
	}

	functions := root.FindByKind(parser.KindFunctionDefinition)
	fmt.Printf("Found %d function(s)\n", len(functions))

	// Output: Found 1 function(s)
}

func ExampleRender() {
	p := parser.New()

	root, err := p.ParseTree(context.Background(), []byte(`
import os   # unused
x=( 1 ,2, )
def f( a,b = "z" ):
    return a+b
`))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(parser.Render(root))

	// Output:
	// import os
	// x = (1, 2)
	//
	// def f(a, b='z'):
	//     return a + b
}
