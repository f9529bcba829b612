package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/bbernstein/chargemap/backend-go/internal/view"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

// MarkersResponse carries the marker set of one view. Loading is true only
// when the caller stopped waiting before the fetch settled.
type MarkersResponse struct {
	APIResponse
	Loading bool               `json:"loading"`
	Title   string             `json:"title"`
	Center  *models.Coordinate `json:"center,omitempty"`
	Zoom    int                `json:"zoom,omitempty"`
	Markers []models.Marker    `json:"markers"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

// NewMarkersResponse flattens a rendered page.
func NewMarkersResponse(page view.Page) *MarkersResponse {
	resp := &MarkersResponse{
		APIResponse: APIResponse{ResponseType: "markers"},
		Loading:     page.Loading,
		Title:       page.Title,
		Markers:     page.Markers(),
	}
	if page.Map != nil {
		center := page.Map.Center
		resp.Center = &center
		resp.Zoom = page.Map.Zoom
	}
	return resp
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

var jsonHeaders = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// Success wraps body in a 200 API Gateway response.
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    copyHeaders(),
		Body:       string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    copyHeaders(),
		Body:       string(body),
	}, nil
}

func copyHeaders() map[string]string {
	headers := make(map[string]string, len(jsonHeaders))
	for k, v := range jsonHeaders {
		headers[k] = v
	}
	return headers
}
