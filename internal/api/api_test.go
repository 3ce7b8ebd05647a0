package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"testing"

	"github.com/fleetassist/missions/internal/db"
	"github.com/fleetassist/missions/internal/storage"
)

// apiResponse mirrors the JSON envelope for decoding in tests.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, storage.NewMock("https://storage.test"))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) (*http.Response, apiResponse) {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, decodeEnvelope(t, resp)
}

func putJSON(t *testing.T, url string, body any) (*http.Response, apiResponse) {
	t.Helper()
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT %s: %v", url, err)
	}
	return resp, decodeEnvelope(t, resp)
}

func getJSON(t *testing.T, url string) (*http.Response, apiResponse) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp, decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()
	defer resp.Body.Close()
	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return env
}

// validMission is a minimal valid creation payload.
func validMission() map[string]any {
	return map[string]any{
		"vehicle_brand":     "Renault",
		"vehicle_model":     "Clio",
		"pickup_location":   "Paris",
		"delivery_location": "Lyon",
		"client_name":       "A",
		"client_email":      "a@x.com",
	}
}

// createMission creates a mission via the API and returns its envelope data.
func createMission(t *testing.T, server *httptest.Server) map[string]any {
	t.Helper()
	resp, env := postJSON(t, server.URL+"/api/missions", validMission())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.StatusCode, env.Message)
	}
	var mission map[string]any
	json.Unmarshal(env.Data, &mission)
	return mission
}

func TestCreateMissionEndpoint(t *testing.T) {
	server := setupTestServer(t)

	mission := createMission(t, server)

	code, _ := mission["mission_code"].(string)
	if !regexp.MustCompile(`^FA-\d{8}-\d{3}$`).MatchString(code) {
		t.Errorf("unexpected mission code %q", code)
	}
	if mission["status"] != "pending" {
		t.Errorf("expected status pending, got %v", mission["status"])
	}
}

func TestCreateMissionValidation(t *testing.T) {
	server := setupTestServer(t)

	payload := validMission()
	delete(payload, "client_email")

	resp, env := postJSON(t, server.URL+"/api/missions", payload)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if env.Success {
		t.Error("expected success=false on validation failure")
	}
}

func TestGetMissionByCodeAndID(t *testing.T) {
	server := setupTestServer(t)
	mission := createMission(t, server)
	code := mission["mission_code"].(string)

	resp, env := getJSON(t, server.URL+"/api/missions/"+code)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 by code, got %d", resp.StatusCode)
	}
	var view map[string]any
	json.Unmarshal(env.Data, &view)
	if view["photos"] == nil {
		t.Error("expected photos field to be present (empty array)")
	}

	resp, _ = getJSON(t, server.URL+"/api/missions/1")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 by id, got %d", resp.StatusCode)
	}

	resp, _ = getJSON(t, server.URL+"/api/missions/FA-19700101-001")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown code, got %d", resp.StatusCode)
	}
}

func TestSetStatusEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createMission(t, server)

	resp, _ := putJSON(t, server.URL+"/api/missions/1/status", map[string]string{"status": "in_progress"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, env := putJSON(t, server.URL+"/api/missions/1/status", map[string]string{"status": "not_a_status"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %d", resp.StatusCode)
	}
	if env.Success {
		t.Error("expected success=false for invalid status")
	}

	resp, _ = putJSON(t, server.URL+"/api/missions/42/status", map[string]string{"status": "cancelled"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown mission, got %d", resp.StatusCode)
	}
}

func TestSignatureEndpointValidation(t *testing.T) {
	server := setupTestServer(t)
	createMission(t, server)

	resp, _ := putJSON(t, server.URL+"/api/missions/1/signature", map[string]string{"signature": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty signature, got %d", resp.StatusCode)
	}

	resp, _ = putJSON(t, server.URL+"/api/missions/1/signature", map[string]string{"signature": "sig"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

// multipartPhoto builds a multipart body with a PNG photo part.
func multipartPhoto(t *testing.T, photoType string) (*bytes.Buffer, string) {
	t.Helper()

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s.png"`, photoType))
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("creating photo part: %v", err)
	}
	part.Write(img.Bytes())

	mw.WriteField("type", photoType)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestPhotoUploadEndpoint(t *testing.T) {
	server := setupTestServer(t)
	mission := createMission(t, server)
	code := mission["mission_code"].(string)

	body, contentType := multipartPhoto(t, "front")
	resp, err := http.Post(server.URL+"/api/missions/1/photos", contentType, body)
	if err != nil {
		t.Fatalf("uploading photo: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", resp.StatusCode, env.Message)
	}

	var photo map[string]any
	json.Unmarshal(env.Data, &photo)
	url, _ := photo["url"].(string)
	if url == "" {
		t.Error("expected a locator URL in the response")
	}

	// Same type again: replaces, never duplicates.
	body, contentType = multipartPhoto(t, "front")
	resp, _ = http.Post(server.URL+"/api/missions/1/photos", contentType, body)
	resp.Body.Close()

	_, env = getJSON(t, server.URL+"/api/missions/"+code)
	var view struct {
		Photos []map[string]any `json:"photos"`
	}
	json.Unmarshal(env.Data, &view)
	if len(view.Photos) != 1 {
		t.Errorf("expected 1 photo after re-upload, got %d", len(view.Photos))
	}
}

// countingStorage records how many blobs were stored.
type countingStorage struct {
	writes int
}

func (s *countingStorage) Store(_ context.Context, key, _ string, _ []byte) (string, error) {
	s.writes++
	return "https://storage.test/" + key, nil
}

func TestPhotoUploadUnknownMissionWritesNothing(t *testing.T) {
	database := db.NewTestDB(t)
	blobs := &countingStorage{}
	server := httptest.NewServer(NewRouter(database, blobs))
	t.Cleanup(server.Close)

	body, contentType := multipartPhoto(t, "front")
	resp, err := http.Post(server.URL+"/api/missions/999/photos", contentType, body)
	if err != nil {
		t.Fatalf("uploading photo: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown mission, got %d", resp.StatusCode)
	}
	if blobs.writes != 0 {
		t.Errorf("expected no blob writes for unknown mission, got %d", blobs.writes)
	}
}

func TestPhotoUploadRejectsBadMIME(t *testing.T) {
	server := setupTestServer(t)
	createMission(t, server)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="doc.gif"`)
	header.Set("Content-Type", "image/gif")
	part, _ := mw.CreatePart(header)
	part.Write([]byte("GIF89a"))
	mw.WriteField("type", "front")
	mw.Close()

	resp, err := http.Post(server.URL+"/api/missions/1/photos", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("uploading photo: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for GIF upload, got %d", resp.StatusCode)
	}
}

func TestInspectionEndpoint(t *testing.T) {
	server := setupTestServer(t)
	mission := createMission(t, server)
	code := mission["mission_code"].(string)

	resp, _ := postJSON(t, server.URL+"/api/missions/1/inspection", map[string]any{
		"observations": "clean",
		"signature":    "sig",
		"checklist":    map[string]any{"lights": true},
		"key_count":    2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	_, env := getJSON(t, server.URL+"/api/missions/"+code)
	var view map[string]any
	json.Unmarshal(env.Data, &view)
	if view["observations"] != "clean" {
		t.Errorf("expected mission observations synced, got %v", view["observations"])
	}
	if view["key_count"] != float64(2) {
		t.Errorf("expected key_count 2 in view, got %v", view["key_count"])
	}

	resp, _ = postJSON(t, server.URL+"/api/missions/42/inspection", map[string]any{"key_count": 0})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown mission, got %d", resp.StatusCode)
	}
}

func TestSearchEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createMission(t, server)
	putJSON(t, server.URL+"/api/missions/1/status", map[string]string{"status": "completed"})

	_, env := getJSON(t, server.URL+"/api/missions/search?status=completed&vehicle_brand=ren")
	var missions []map[string]any
	json.Unmarshal(env.Data, &missions)
	if len(missions) != 1 {
		t.Errorf("expected 1 match, got %d", len(missions))
	}

	_, env = getJSON(t, server.URL+"/api/missions/search?status=cancelled")
	missions = nil
	json.Unmarshal(env.Data, &missions)
	if len(missions) != 0 {
		t.Errorf("expected no matches, got %d", len(missions))
	}
}

func TestStatsEndpoints(t *testing.T) {
	server := setupTestServer(t)

	_, env := getJSON(t, server.URL+"/api/missions/stats/advanced")
	var stats struct {
		Basic struct {
			Total int `json:"total"`
		} `json:"basic"`
		Monthly            []any   `json:"monthly"`
		TopVehicles        []any   `json:"top_vehicles"`
		AvgProcessingHours float64 `json:"avg_processing_hours"`
	}
	json.Unmarshal(env.Data, &stats)
	if stats.Basic.Total != 0 || len(stats.Monthly) != 0 || len(stats.TopVehicles) != 0 || stats.AvgProcessingHours != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	createMission(t, server)
	_, env = getJSON(t, server.URL+"/api/missions/stats")
	var counts map[string]any
	json.Unmarshal(env.Data, &counts)
	if counts["pending"] != float64(1) {
		t.Errorf("expected 1 pending mission, got %v", counts["pending"])
	}
}

func TestExportEndpoint(t *testing.T) {
	server := setupTestServer(t)
	createMission(t, server)

	resp, err := http.Get(server.URL + "/api/missions/export")
	if err != nil {
		t.Fatalf("GET export: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}

	resp, err = http.Get(server.URL + "/api/missions/export?format=excel")
	if err != nil {
		t.Fatalf("GET excel export: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 for excel export, got %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := setupTestServer(t)

	resp, env := getJSON(t, server.URL+"/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !env.Success {
		t.Error("expected success=true")
	}
}
