// Package http provides request and response helpers for the form API.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	// Bind a JSON or form-encoded body into a struct
//	var payload struct {
//	    Value string `json:"value"`
//	}
//	if err := req.Bind(&payload); err != nil { ... }
//
//	// Route params (requires Chi router)
//	id := req.RouteParam("id")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.Conflict()                // 409 {"message": "Conflict."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
package http
