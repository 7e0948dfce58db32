// A Jinja2-compatible text template engine
//
// Current caveats
//   - Parallelism: a State is created fresh for every Render call, so an
//     Environment and its registered Templates may be shared across
//     goroutines, but a Context must not be reused concurrently while a
//     render using it is in flight.
//   - The autoescape tag toggles State.autoescape for the duration of its
//     body rather than being a no-op (see the open-question decisions in
//     DESIGN.md).
//
// A tiny example:
//
//	env := gojinja.NewEnvironment()
//	tpl, err := env.AddTemplate("greeting", "Hello {{ name|capitalize }}!")
//	if err != nil {
//	    panic(err)
//	}
//	ctx, err := gojinja.NewContext(map[string]interface{}{"name": "florian"})
//	if err != nil {
//	    panic(err)
//	}
//	out, err := tpl.Render(ctx)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(out) // Output: Hello Florian!
package gojinja
