package anyhttp_test

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/advdv/anyhttp"
)

func ExampleCompose() {
	requireJSON := func(c *anyhttp.Context) error {
		if c.Req.Header("Content-Type") != "application/json" {
			return c.Res.Status(415).JSON(map[string]string{"message": "Send JSON"})
		}

		return c.Next()
	}

	tag := func(c *anyhttp.Context) error {
		c.Set("tagged", true)
		return c.Next()
	}

	mw := anyhttp.Compose(requireJSON, tag)

	rec := newRecorder()
	c := anyhttp.NewContext(anyhttp.ContextConfig{
		Context: context.Background(),
		Headers: map[string][]string{"Content-Type": {"text/plain"}},
		Emitter: rec,
		Next: func() error {
			fmt.Println("controller")
			return nil
		},
	})

	_ = mw(c)
	fmt.Println("status:", rec.status, "tagged:", c.Get("tagged"))
	// Output:
	// status: 415 tagged: <nil>
}

func ExampleTranslate() {
	t := anyhttp.Translate(anyhttp.NewError(anyhttp.CodeNotFound, "not_found", "User not found"))
	b, _ := json.Marshal(t.Body)

	fmt.Println(t.Status, string(b))
	// Output:
	// 404 {"error":{"code":"not_found","message":"User not found"}}
}

func ExampleJoinPath() {
	fmt.Println(anyhttp.JoinPath(anyhttp.SplitPrefix("/api/v1/"), "/users"))
	fmt.Println(anyhttp.JoinPath([]string{"api", "v1"}, anyhttp.ColonParams("/users/{id}/")))
	fmt.Println(anyhttp.JoinPath([]string{"api"}, "/"))
	// Output:
	// /api/v1/users
	// /api/v1/users/:id
	// /api
}
