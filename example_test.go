package pointfield_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/pointfield"
	"github.com/hupe1980/pointfield/document"
	"github.com/hupe1980/pointfield/fields"
	"github.com/hupe1980/pointfield/mapping"
)

// Example_schema maps a JSON document against a JSON mapping.
func Example_schema() {
	schema, err := pointfield.SchemaFromJSON([]byte(`{
		"properties": {
			"location": {"type": "point", "store": true}
		}
	}`))
	if err != nil {
		log.Fatal(err)
	}

	fs, err := schema.ParseJSON([]byte(`{"location": "1.5,-2"}`))
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range fs.Fields("location") {
		fmt.Println(f.Kind, f.Point())
	}
	// Output:
	// indexed 1.5,-2
	// doc_values 1.5,-2
	// stored 1.5,-2
}

// Example_inputForms shows that every accepted form encodes to the same key.
func Example_inputForms() {
	m, err := pointfield.New("location", mapping.Default())
	if err != nil {
		log.Fatal(err)
	}

	inputs := []document.Value{
		document.String("1.2,1.3"),
		document.String("POINT (1.2 1.3)"),
		document.Object(map[string]document.Value{"x": document.Number(1.2), "y": document.Number(1.3)}),
		document.Array(document.Number(1.2), document.Number(1.3)),
	}
	for _, in := range inputs {
		keys, err := m.Keys(in)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(keys[0])
	}
	// Output:
	// bff3333333333333bff4cccccccccccd
	// bff3333333333333bff4cccccccccccd
	// bff3333333333333bff4cccccccccccd
	// bff3333333333333bff4cccccccccccd
}

// Example_ignoreMalformed drops a malformed list element instead of
// rejecting the document.
func Example_ignoreMalformed() {
	cfg, err := mapping.Build(mapping.Options{IgnoreMalformed: ptr(true), DocValues: ptr(false)})
	if err != nil {
		log.Fatal(err)
	}
	m, err := pointfield.New("location", cfg)
	if err != nil {
		log.Fatal(err)
	}

	fs := fields.NewSet()
	err = m.Map(document.Array(document.String("1,2"), document.String("north")), fs)
	fmt.Println(err, fs.Len(), fs.Ignored())

	strict, _ := pointfield.New("location", mapping.Default())
	err = strict.Map(document.String("north"), fields.NewSet())
	fmt.Println(errors.Is(err, pointfield.ErrMalformedPoint))
	// Output:
	// <nil> 1 [location]
	// true
}

// Example_parseBatch maps documents concurrently.
func Example_parseBatch() {
	cfgs := map[string]mapping.Config{"location": mapping.Default()}
	schema, err := pointfield.NewSchema(cfgs, pointfield.WithConcurrency(4))
	if err != nil {
		log.Fatal(err)
	}

	docs := []document.Document{
		{"location": document.String("1,1")},
		{"location": document.Bool(true)},
		{"location": document.Null()},
	}
	results, err := schema.ParseBatch(context.Background(), docs)
	if err != nil {
		log.Fatal(err)
	}
	for i, r := range results {
		if r.Err != nil {
			fmt.Println(i, "rejected")
			continue
		}
		fmt.Println(i, r.Fields.Len())
	}
	// Output:
	// 0 2
	// 1 rejected
	// 2 0
}

func ptr[T any](v T) *T { return &v }
