package querystring_test

import (
	"fmt"
	"os"

	"github.com/tomasbasham/querystring"
)

func ExampleParse() {
	q, err := querystring.Parse("?tags=go&tags=web&page=2&debug",
		querystring.WithParseNumber())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	for k, v := range q.All() {
		fmt.Printf("%s: %#v\n", k, v)
	}
	// Output:
	// tags: []interface {}{"go", "web"}
	// page: 2
	// debug: <nil>
}

func ExampleParse_comma() {
	q, err := querystring.Parse("ids=1,2,3&name=a%2Cb",
		querystring.WithArrayFormat(querystring.FormatComma),
		querystring.WithType("ids", querystring.NumberArray))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	ids, _ := q.Get("ids")
	name, _ := q.Get("name")
	fmt.Println(ids, name)
	// Output:
	// [1 2 3] a,b
}

func ExampleStringify() {
	q := querystring.NewQuery()
	q.Set("q", "hello world")
	q.Set("tags", []string{"go", "web"})
	q.Set("draft", nil)
	q.Set("skip", querystring.Undefined)

	s, err := querystring.Stringify(q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(s)
	// Output:
	// q=hello%20world&tags=go&tags=web&draft
}

func Example_customMarshal() {
	type PetOwner struct {
		OwnerName string `query:"owner_name"`
		PetType   Animal `query:"pet_type"`
	}

	owner := PetOwner{
		OwnerName: "Alice",
		PetType:   Gopher,
	}

	s, err := querystring.EncodeToString(owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(s)
	// Output:
	// owner_name=Alice&pet_type=gopher
}

func ExampleUnmarshal() {
	data := []byte("name=John+Doe&age=30&pronouns=he&pronouns=him")

	var p Person
	if err := querystring.Unmarshal(data, &p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("%#v\n", p)
	// Output:
	// querystring_test.Person{Name:"John Doe", Age:30, Pronouns:[]string{"he", "him"}}
}
