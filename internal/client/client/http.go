package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/common"
	"github.com/hashicorp/go-cleanhttp"
)

const maxResponseBytes = 1 << 20

// HTTPClient talks to the server over JSON/HTTP. It is safe for concurrent
// use and keeps no credentials of its own.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("server url is empty")
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	return &HTTPClient{baseURL: baseURL, http: hc}, nil
}

// envelope covers every response shape the server produces.
type envelope struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	User    json.RawMessage `json:"user"`
	Token   string          `json:"token"`

	TranslatedText string              `json:"translatedText"`
	DetectedLang   models.LanguageCode `json:"detectedLang"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body any) (*envelope, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, context.Canceled) {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{
			Status:        resp.StatusCode,
			Message:       env.message(),
			authenticated: token != "",
		}
	}
	if decodeErr != nil {
		return nil, &ServerError{Status: resp.StatusCode, Message: "malformed response"}
	}
	if env.Success != nil && !*env.Success {
		return nil, &ServerError{Status: resp.StatusCode, Message: env.message()}
	}
	return &env, nil
}

func (e *envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, email string, password []byte) error {
	_, err := c.do(ctx, http.MethodPost, "/register", "", credentials{Email: email, Password: string(password)})
	return err
}

// Login accepts both {data:{user,token}} and a top-level user/token pair.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/login", "", credentials{Email: email, Password: string(password)})
	if err != nil {
		return nil, err
	}

	userRaw, token := env.User, env.Token
	if len(env.Data) > 0 && string(env.Data) != "null" {
		var data struct {
			User  json.RawMessage `json:"user"`
			Token string          `json:"token"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, &ServerError{Status: http.StatusOK, Message: "malformed response"}
		}
		userRaw, token = data.User, data.Token
	}

	res := &LoginResult{Token: token}
	if len(userRaw) > 0 && string(userRaw) != "null" {
		var u models.User
		if err := json.Unmarshal(userRaw, &u); err != nil {
			return nil, &ServerError{Status: http.StatusOK, Message: "malformed response"}
		}
		res.User = &u
	}
	return res, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", token, struct{}{})
	return err
}

// ValidateSession returns the token claims the server reported.
func (c *HTTPClient) ValidateSession(ctx context.Context, token string) (map[string]any, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	env, err := c.do(ctx, http.MethodGet, "/validate-session", token, nil)
	if err != nil {
		return nil, err
	}
	claims := map[string]any{}
	if len(env.User) > 0 {
		if err := json.Unmarshal(env.User, &claims); err != nil {
			return nil, &ServerError{Status: http.StatusOK, Message: "malformed response"}
		}
	}
	return claims, nil
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, token string, prefs models.Preferences) error {
	_, err := c.do(ctx, http.MethodPost, "/preferences", token, prefs)
	return err
}

func (c *HTTPClient) Translate(ctx context.Context, token string, req TranslateRequest) (*TranslateResult, error) {
	if req.SourceLang == "" {
		req.SourceLang = SourceAuto
	}
	env, err := c.do(ctx, http.MethodPost, "/translate", token, req)
	if err != nil {
		return nil, err
	}
	return &TranslateResult{TranslatedText: env.TranslatedText, DetectedLang: env.DetectedLang}, nil
}

// decodeData unmarshals the data member of a successful response into dst.
func decodeData(env *envelope, dst any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return &ServerError{Status: http.StatusOK, Message: "malformed response"}
	}
	return nil
}

func (c *HTTPClient) SaveTranslation(ctx context.Context, token string, kind models.Modality, entry HistoryEntry) (*HistoryItem, error) {
	env, err := c.do(ctx, http.MethodPost, "/translations/"+url.PathEscape(string(kind)), token, entry)
	if err != nil {
		return nil, err
	}
	item := &HistoryItem{Kind: kind, HistoryEntry: entry}
	if err := decodeData(env, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *HTTPClient) ListTranslations(ctx context.Context, token string, kind models.Modality) ([]HistoryItem, error) {
	env, err := c.do(ctx, http.MethodGet, "/translations/"+url.PathEscape(string(kind)), token, nil)
	if err != nil {
		return nil, err
	}
	items := []HistoryItem{}
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) DeleteTranslation(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/translations/delete/"+url.PathEscape(id), token, nil)
	return err
}

func (c *HTTPClient) ClearTranslations(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodDelete, "/translations", token, nil)
	return err
}

func (c *HTTPClient) SearchLanguages(ctx context.Context, query string) ([]Language, error) {
	env, err := c.do(ctx, http.MethodGet, "/languages?"+url.Values{"query": {query}}.Encode(), "", nil)
	if err != nil {
		return nil, err
	}
	langs := []Language{}
	if err := decodeData(env, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
