package zoho

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"careers-portal-backend/internal/models"
)

// Config carries the Zoho Recruit credentials, supplied out of band.
type Config struct {
	Region       string
	ClientID     string
	ClientSecret string
	RefreshToken string
	OrgID        string
	RedirectURI  string
}

// Client talks to the Zoho Recruit v2 REST API. Every call funnels
// through the request helper so auth, the orgId header, and error
// reporting stay uniform -- the third-party API is the hardest part of
// this system to debug, so failures always carry the response body.
type Client struct {
	cfg   Config
	http  *http.Client
	cache *TokenCache

	// Overridable in tests.
	TokenURL string
	APIBase  string
}

func NewClient(cfg Config, cache *TokenCache) *Client {
	region := cfg.Region
	if region == "" {
		region = "eu"
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{},
		cache:    cache,
		TokenURL: fmt.Sprintf("https://accounts.zoho.%s/oauth/v2/token", region),
		APIBase:  fmt.Sprintf("https://recruit.zoho.%s/recruit/v2", region),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken returns the cached token or refreshes it with the
// refresh-token grant. A refresh failure is a hard error; there is no
// retry.
func (c *Client) getAccessToken() (string, error) {
	if token, ok := c.cache.Get(); ok {
		return token, nil
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {c.cfg.RefreshToken},
	}

	resp, err := c.http.PostForm(c.TokenURL, form)
	if err != nil {
		return "", fmt.Errorf("zoho: token refresh request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("zoho: token refresh failed %d: %s", resp.StatusCode, truncate(body, 400))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("zoho: token refresh returned non-JSON: %s", truncate(body, 400))
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("zoho: token refresh missing access_token: %s", truncate(body, 400))
	}

	expiresIn := tok.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}
	c.cache.Set(tok.AccessToken, time.Duration(expiresIn)*time.Second)
	return tok.AccessToken, nil
}

// request performs an authenticated API call and returns the raw
// response body. Any non-2xx status is an error carrying the truncated
// body for diagnosis.
func (c *Client) request(method, path string, body io.Reader, contentType string) ([]byte, error) {
	token, err := c.getAccessToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, c.APIBase+path, body)
	if err != nil {
		return nil, fmt.Errorf("zoho: build request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("orgId", c.cfg.OrgID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoho: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("zoho: %s %s failed %d: %s", method, path, resp.StatusCode, truncate(respBody, 800))
	}
	return respBody, nil
}

// CreateCandidate mirrors an application as a Candidate record and
// returns the record id Zoho assigned. Fields without a direct Zoho
// equivalent are merged into Additional_Info so nothing submitted is
// silently dropped.
func (c *Client) CreateCandidate(app *models.Application) (string, error) {
	record := map[string]interface{}{
		// Last_Name is mandatory in Zoho.
		"Last_Name": firstNonEmpty(app.LastName, app.FirstName, "Unknown"),
	}

	setIfNotEmpty(record, "First_Name", app.FirstName)
	setIfNotEmpty(record, "Email", app.Email)
	setIfNotEmpty(record, "Mobile", app.Phone)
	setIfNotEmpty(record, "City", deref(app.PreferredLocation))
	setIfNotEmpty(record, "Source", app.SourceOfApplication)
	setIfNotEmpty(record, "LinkedIn__s", deref(app.LinkedinProfile))

	record["Experience_in_Years"] = app.YearsOfExperience
	if app.ExpectedSalary != nil {
		record["Expected_Salary"] = *app.ExpectedSalary
	}

	setIfNotEmpty(record, "Current_Employer", deref(app.PreviousEmployer))
	setIfNotEmpty(record, "Current_Job_Title", deref(app.CurrentJobTitle))

	if len(app.Skills) > 0 {
		record["Skill_Set"] = strings.Join(app.Skills, ", ")
	}

	availability := ""
	if app.AvailabilityForInterview != nil {
		availability = app.AvailabilityForInterview.Format("2006-01-02 15:04")
	}
	if info := mergeAdditionalInfo(
		labeled("Position", app.PositionAppliedFor),
		labeled("Education", app.EducationLevel),
		labeled("Notice period", app.NoticePeriod),
		labeled("Availability", availability),
		labeled("DOB", app.DateOfBirth),
		labeled("Address", app.CurrentAddress),
		labeled("Cover letter", deref(app.CoverLetter)),
	); info != "" {
		record["Additional_Info"] = info
	}

	payload := map[string]interface{}{
		"data":    []interface{}{record},
		"trigger": []string{"workflow"},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("zoho: encode candidate: %w", err)
	}

	respBody, err := c.request(http.MethodPost, "/Candidates", bytes.NewReader(encoded), "application/json")
	if err != nil {
		return "", err
	}

	var resp struct {
		Data []struct {
			Details struct {
				ID string `json:"id"`
			} `json:"details"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil || len(resp.Data) == 0 || resp.Data[0].Details.ID == "" {
		return "", fmt.Errorf("zoho: createCandidate: unexpected response: %s", truncate(respBody, 500))
	}
	return resp.Data[0].Details.ID, nil
}

// UploadAttachment streams a stored resume to the candidate record,
// tagged with the Resume category. A missing, non-regular, or empty
// file makes this a no-op: an upload must never be attempted against a
// stale or failed local write.
func (c *Client) UploadAttachment(candidateID, absPath string) error {
	if absPath == "" {
		return nil
	}
	stat, err := os.Stat(absPath)
	if err != nil || !stat.Mode().IsRegular() || stat.Size() == 0 {
		return nil
	}

	file, err := os.Open(absPath)
	if err != nil {
		return fmt.Errorf("zoho: open attachment: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// Required by Zoho Recruit for candidate attachments.
	if err := writer.WriteField("attachments_category", "Resume"); err != nil {
		return fmt.Errorf("zoho: build attachment form: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(absPath))
	if err != nil {
		return fmt.Errorf("zoho: build attachment form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("zoho: read attachment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("zoho: build attachment form: %w", err)
	}

	_, err = c.request(http.MethodPost, "/Candidates/"+candidateID+"/Attachments", &buf, writer.FormDataContentType())
	return err
}

// CandidateField describes one field of the Candidates module.
type CandidateField struct {
	APIName    string `json:"api_name"`
	DataType   string `json:"data_type"`
	FieldLabel string `json:"field_label"`
	Required   bool   `json:"required"`
}

// CandidateFields fetches the field metadata of the Candidates module.
func (c *Client) CandidateFields() ([]CandidateField, error) {
	body, err := c.request(http.MethodGet, "/settings/fields?module=Candidates", nil, "")
	if err != nil {
		return nil, err
	}
	var resp struct {
		Fields []CandidateField `json:"fields"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("zoho: candidate fields: non-JSON response: %s", truncate(body, 400))
	}
	return resp.Fields, nil
}

// ExchangeAuthCode trades an OAuth authorization code for tokens. Used
// once by the operator to obtain the refresh token.
func (c *Client) ExchangeAuthCode(code string) (map[string]interface{}, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"redirect_uri":  {c.cfg.RedirectURI},
		"code":          {code},
	}

	resp, err := c.http.PostForm(c.TokenURL, form)
	if err != nil {
		return nil, fmt.Errorf("zoho: auth code exchange: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("zoho: auth code exchange failed %d: %s", resp.StatusCode, truncate(body, 400))
	}

	var tokens map[string]interface{}
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("zoho: auth code exchange returned non-JSON: %s", truncate(body, 400))
	}
	return tokens, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func setIfNotEmpty(record map[string]interface{}, key, value string) {
	if value != "" {
		record[key] = value
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func labeled(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func mergeAdditionalInfo(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, " | ")
}
