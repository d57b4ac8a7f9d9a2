// Package campus provides an embeddable Go client for listing university
// records (students, faculties, admins and courses) from MongoDB or an
// in-process memory store.
//
// Every list call runs the same pipeline as the HTTP API: free-text search,
// exact-match filters, sort, pagination and field selection, followed by a
// total count for the page metadata.
//
// # Typed listings
//
//	client, _ := campus.New(ctx, campus.WithMongo("mongodb://localhost:27017", "campus"))
//	defer client.Close(ctx)
//
//	page, _ := client.Students().List(ctx, campus.Query{
//	    SearchTerm: "rahim",
//	    Filter:     map[string][]string{"gender": {"male"}},
//	    Sort:       []string{"-createdAt"},
//	    Page:       2,
//	    Limit:      5,
//	})
//	fmt.Println(page.Meta.Total, len(page.Data))
//
// # Raw query strings
//
//	vals, _ := url.ParseQuery("searchTerm=cse&code=101&fields=title,code")
//	page, _ := client.Courses().ListValues(ctx, vals)
//
// # By entity name
//
//	l, err := client.Entity("admins")
//	if errors.Is(err, campus.ErrUnknownEntity) { ... }
package campus
