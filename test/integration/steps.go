package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/recallkit/recallkit/pkg/model"
	"github.com/recallkit/recallkit/pkg/token"
)

// StepsContext holds state for a single scenario
type StepsContext struct {
	tc *TestContext

	authToken    string
	lastResponse *http.Response
	lastBody     []byte
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions with godog
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.authToken = ""
		s.lastResponse = nil
		s.lastBody = nil
		return ctx, s.cleanDatabase()
	})

	sc.Step(`^the RecallKit server is running$`, s.theServerIsRunning)
	sc.Step(`^I use the API token$`, s.iUseTheAPIToken)
	sc.Step(`^I use no token$`, s.iUseNoToken)
	sc.Step(`^I use a token scoped to profile "([^"]*)"$`, s.iUseAScopedToken)
	sc.Step(`^I upload "([^"]*)" to topic "([^"]*)" with content:$`, s.iUploadToTopic)
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, s.iSendARequest)
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, s.iSendARequestWithBody)
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response JSON should be:$`, s.theResponseJSONShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response field "([^"]*)" should be (\d+)$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)
	sc.Step(`^I review the first due card of profile "([^"]*)" in topic "([^"]*)" as (correct|incorrect)$`, s.iReviewTheFirstDueCard)
	sc.Step(`^the due card count of profile "([^"]*)" in topic "([^"]*)" should be (\d+)$`, s.theDueCardCountShouldBe)
	sc.Step(`^a progress row should exist for profile "([^"]*)"$`, s.aProgressRowShouldExist)
	sc.Step(`^no progress row should exist for profile "([^"]*)"$`, s.noProgressRowShouldExist)
}

func (s *StepsContext) cleanDatabase() error {
	return s.tc.DB.Exec("TRUNCATE progress").Error
}

func (s *StepsContext) theServerIsRunning() error {
	resp, err := s.tc.HTTPClient.Get(s.tc.ServerURL + "/status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status returned %d", resp.StatusCode)
	}
	return nil
}

func (s *StepsContext) iUseTheAPIToken() error {
	s.authToken = APIToken
	return nil
}

func (s *StepsContext) iUseNoToken() error {
	s.authToken = ""
	return nil
}

func (s *StepsContext) iUseAScopedToken(profile string) error {
	tok, err := token.Issue(APIToken, profile, time.Hour)
	if err != nil {
		return err
	}
	s.authToken = tok
	return nil
}

func (s *StepsContext) iUploadToTopic(filename, topic string, content *godog.DocString) error {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(part, content.Content); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return s.do(http.MethodPost, "/api/topics/"+topic, body, mw.FormDataContentType())
}

func (s *StepsContext) iSendARequest(method, path string) error {
	return s.do(method, path, nil, "")
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.do(method, path, strings.NewReader(body.Content), "application/json")
}

func (s *StepsContext) do(method, path string, body io.Reader, contentType string) error {
	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	s.lastResponse = resp
	s.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.lastResponse == nil {
		return fmt.Errorf("no request has been sent")
	}
	if s.lastResponse.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.lastResponse.StatusCode, s.lastBody)
	}
	return nil
}

func (s *StepsContext) theResponseJSONShouldBe(expected *godog.DocString) error {
	var want, got interface{}
	if err := json.Unmarshal([]byte(expected.Content), &want); err != nil {
		return fmt.Errorf("invalid expected JSON: %w", err)
	}
	if err := json.Unmarshal(s.lastBody, &got); err != nil {
		return fmt.Errorf("response is not JSON: %w: %s", err, s.lastBody)
	}
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("expected JSON %s, got %s", expected.Content, s.lastBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(s.lastBody), text) {
		return fmt.Errorf("expected response to contain %q, got %s", text, s.lastBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(text string) error {
	if strings.Contains(string(s.lastBody), text) {
		return fmt.Errorf("expected response not to contain %q, got %s", text, s.lastBody)
	}
	return nil
}

// theResponseFieldShouldBe follows a dotted path into the response object
func (s *StepsContext) theResponseFieldShouldBe(path string, expected int) error {
	var value interface{}
	if err := json.Unmarshal(s.lastBody, &value); err != nil {
		return fmt.Errorf("response is not JSON: %w: %s", err, s.lastBody)
	}
	for _, key := range strings.Split(path, ".") {
		obj, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("field %q not found in %s", path, s.lastBody)
		}
		if value, ok = obj[key]; !ok {
			return fmt.Errorf("field %q not found in %s", path, s.lastBody)
		}
	}
	n, ok := value.(float64)
	if !ok || int(n) != expected {
		return fmt.Errorf("expected %s to be %d, got %v", path, expected, value)
	}
	return nil
}

type dueResponse struct {
	Cards []struct {
		ID string `json:"id"`
	} `json:"cards"`
}

func (s *StepsContext) fetchDue(profile, topic string) (*dueResponse, error) {
	if err := s.do(http.MethodGet, "/api/study/"+profile+"/due?topic="+topic, nil, ""); err != nil {
		return nil, err
	}
	if s.lastResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("due returned %d: %s", s.lastResponse.StatusCode, s.lastBody)
	}
	var due dueResponse
	if err := json.Unmarshal(s.lastBody, &due); err != nil {
		return nil, err
	}
	return &due, nil
}

func (s *StepsContext) iReviewTheFirstDueCard(profile, topic, verdict string) error {
	due, err := s.fetchDue(profile, topic)
	if err != nil {
		return err
	}
	if len(due.Cards) == 0 {
		return fmt.Errorf("profile %q has no due cards", profile)
	}

	body, err := json.Marshal(map[string]interface{}{
		"card_id": due.Cards[0].ID,
		"correct": verdict == "correct",
	})
	if err != nil {
		return err
	}
	return s.do(http.MethodPost, "/api/study/"+profile+"/review", bytes.NewReader(body), "application/json")
}

func (s *StepsContext) theDueCardCountShouldBe(profile, topic string, expected int) error {
	due, err := s.fetchDue(profile, topic)
	if err != nil {
		return err
	}
	if len(due.Cards) != expected {
		return fmt.Errorf("expected %d due cards, got %d", expected, len(due.Cards))
	}
	return nil
}

func (s *StepsContext) aProgressRowShouldExist(profile string) error {
	var row model.Progress
	if err := s.tc.DB.Where("profile = ?", profile).First(&row).Error; err != nil {
		return fmt.Errorf("progress row for %q: %w", profile, err)
	}
	if len(row.Document) == 0 {
		return fmt.Errorf("progress row for %q has an empty document", profile)
	}
	return nil
}

func (s *StepsContext) noProgressRowShouldExist(profile string) error {
	var count int64
	if err := s.tc.DB.Model(&model.Progress{}).Where("profile = ?", profile).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected no progress row for %q, found %d", profile, count)
	}
	return nil
}
