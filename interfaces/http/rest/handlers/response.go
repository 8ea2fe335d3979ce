package handlers

import (
	"encoding/json"
	"net/http"
)

// Request is a transport-neutral HTTP request
type Request struct {
	Method         string
	Path           string
	PathParameters map[string]string
	Headers        map[string]string
	Body           string
	RequestID      string
}

// Response is a transport-neutral HTTP response. Body is empty for 204.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// ErrorBody is the JSON body of every error response
type ErrorBody struct {
	Error string `json:"error"`
}

// ListBody is the JSON body of the list response
type ListBody struct {
	Todos interface{} `json:"todos"`
}

const internalErrorBody = `{"error":"Internal server error"}`

// DefaultHeaders returns the headers every response carries
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

// JSONResponse serialises data into a response with the default headers
func JSONResponse(status int, data interface{}) (Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: status,
		Headers:    DefaultHeaders(),
		Body:       string(body),
	}, nil
}

// ErrorResponse builds an {"error": message} response
func ErrorResponse(status int, message string) Response {
	resp, err := JSONResponse(status, ErrorBody{Error: message})
	if err != nil {
		return InternalErrorResponse()
	}
	return resp
}

// InternalErrorResponse is the uniform 500 response. It never carries error detail.
func InternalErrorResponse() Response {
	return Response{
		StatusCode: http.StatusInternalServerError,
		Headers:    DefaultHeaders(),
		Body:       internalErrorBody,
	}
}

// NoContentResponse is the 204 response with an empty body
func NoContentResponse() Response {
	return Response{
		StatusCode: http.StatusNoContent,
		Headers:    DefaultHeaders(),
	}
}
