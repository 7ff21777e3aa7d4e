package steps

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

func registerAccountSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a registered user$`, aRegisteredUser)
	ctx.Step(`^the user is on the premium plan$`, theUserIsOnThePremiumPlan)
	ctx.Step(`^I log in with password "([^"]*)"$`, iLogInWithPassword)
}

func registerDataSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^an? "(DEPOSIT|EXPENSE|INVESTMENT)" transaction "([^"]*)" of (\d+(?:\.\d+)?) on "(\d{4}-\d{2}-\d{2})"$`, aTransaction)
	ctx.Step(`^an active subscription "([^"]*)" of (\d+(?:\.\d+)?)$`, anActiveSubscription)
	ctx.Step(`^an investment category "([^"]*)"$`, anInvestmentCategory)
	ctx.Step(`^I allocate (\d+(?:\.\d+)?) to "([^"]*)"$`, iAllocateTo)
}

func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I request the dashboard for month "(\d{2})" of year "(\d{4})"$`, iRequestTheDashboard)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^the billing provider reports plan "([^"]*)" for email "([^"]*)"$`, theBillingProviderReportsPlan)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, theResponseFieldShouldBeNumber)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
}

// request sends a JSON request against the in-process server, attaching the
// scenario's access token when one is set.
func (tc *TestContext) request(method, path string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	tc.response = &httpResponse{status: resp.StatusCode, body: responseBody}
	return nil
}

func (tc *TestContext) jsonField(path string) (any, error) {
	var parsed map[string]any
	if err := json.Unmarshal(tc.response.body, &parsed); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}

	var current any = parsed
	for _, segment := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object", path)
		}
		current, ok = object[segment]
		if !ok {
			return nil, fmt.Errorf("field %q not found", path)
		}
	}
	return current, nil
}

// Step implementations

func aRegisteredUser(ctx context.Context) error {
	tc := GetTestContext(ctx)

	err := tc.request(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    testUserEmail,
		"password": testUserPassword,
	}, nil)
	if err != nil {
		return err
	}
	if tc.response.status != http.StatusCreated {
		return fmt.Errorf("register failed with status %d: %s", tc.response.status, tc.response.body)
	}

	token, err := tc.jsonField("access_token")
	if err != nil {
		return err
	}
	tc.accessToken, _ = token.(string)

	rawID, err := tc.jsonField("user.id")
	if err != nil {
		return err
	}
	id, err := uuid.Parse(fmt.Sprint(rawID))
	if err != nil {
		return fmt.Errorf("user id is not a uuid: %w", err)
	}
	tc.userID = id
	return nil
}

func theUserIsOnThePremiumPlan(ctx context.Context) error {
	return theBillingProviderReportsPlan(ctx, "premium", testUserEmail)
}

func iLogInWithPassword(ctx context.Context, password string) error {
	tc := GetTestContext(ctx)
	return tc.request(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    testUserEmail,
		"password": password,
	}, nil)
}

func aTransaction(ctx context.Context, transactionType, name string, amount float64, date string) error {
	tc := GetTestContext(ctx)

	err := tc.request(http.MethodPost, "/api/v1/transactions", map[string]any{
		"name":           name,
		"amount":         amount,
		"type":           transactionType,
		"category":       "OTHER",
		"payment_method": "PIX",
		"date":           date,
	}, nil)
	if err != nil {
		return err
	}
	if tc.response.status != http.StatusCreated {
		return fmt.Errorf("transaction create failed with status %d: %s", tc.response.status, tc.response.body)
	}
	return nil
}

func anActiveSubscription(ctx context.Context, name string, amount float64) error {
	tc := GetTestContext(ctx)

	err := tc.request(http.MethodPost, "/api/v1/subscriptions", map[string]any{
		"name":           name,
		"amount":         amount,
		"payment_method": "CREDIT_CARD",
	}, nil)
	if err != nil {
		return err
	}
	if tc.response.status != http.StatusCreated {
		return fmt.Errorf("subscription create failed with status %d: %s", tc.response.status, tc.response.body)
	}
	return nil
}

func anInvestmentCategory(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)

	err := tc.request(http.MethodPost, "/api/v1/investments/categories", map[string]any{
		"name": name,
		"type": "FIXED_INCOME",
	}, nil)
	if err != nil {
		return err
	}
	if tc.response.status != http.StatusCreated {
		return fmt.Errorf("category create failed with status %d: %s", tc.response.status, tc.response.body)
	}

	id, err := tc.jsonField("id")
	if err != nil {
		return err
	}
	tc.categoryIDs[name] = fmt.Sprint(id)
	return nil
}

func iAllocateTo(ctx context.Context, amount float64, categoryName string) error {
	tc := GetTestContext(ctx)

	categoryID, ok := tc.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	return tc.request(
		http.MethodPut,
		"/api/v1/investments/categories/"+categoryID+"/allocation",
		map[string]any{"amount": amount},
		nil,
	)
}

func iRequestTheDashboard(ctx context.Context, month, year string) error {
	tc := GetTestContext(ctx)
	return tc.request(http.MethodGet, "/api/v1/dashboard?month="+month+"&year="+year, nil, nil)
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	return tc.request(method, endpoint, nil, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)

	var payload map[string]any
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("invalid request body in step: %w", err)
	}
	return tc.request(method, endpoint, payload, nil)
}

// theBillingProviderReportsPlan posts a signed plan change event the way the
// payment provider would.
func theBillingProviderReportsPlan(ctx context.Context, plan, email string) error {
	tc := GetTestContext(ctx)

	payload, err := json.Marshal(map[string]string{
		"email": email,
		"plan":  plan,
	})
	if err != nil {
		return err
	}

	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	req, err := http.NewRequest(http.MethodPost, tc.server.URL+"/api/v1/billing/webhook", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Signature", signature)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.response = &httpResponse{status: resp.StatusCode, body: responseBody}
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, status int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.response.status != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, tc.response.status, tc.response.body)
	}
	return nil
}

func theResponseFieldShouldBeNumber(ctx context.Context, path, expected string) error {
	tc := GetTestContext(ctx)

	value, err := tc.jsonField(path)
	if err != nil {
		return err
	}
	actual, ok := value.(float64)
	if !ok {
		return fmt.Errorf("field %q is %T, not a number", path, value)
	}

	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	if math.Abs(actual-want) > 1e-6 {
		return fmt.Errorf("field %q = %v, want %v", path, actual, want)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, path string) error {
	tc := GetTestContext(ctx)
	_, err := tc.jsonField(path)
	return err
}

func theResponseShouldContain(ctx context.Context, needle string) error {
	tc := GetTestContext(ctx)
	if !strings.Contains(string(tc.response.body), needle) {
		return fmt.Errorf("response %q does not contain %q", tc.response.body, needle)
	}
	return nil
}
