package leagueapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/slowpitch-league/internal/domain/draft"
	"github.com/riskibarqy/slowpitch-league/internal/domain/lineup"
	"github.com/riskibarqy/slowpitch-league/internal/domain/score"
	"github.com/riskibarqy/slowpitch-league/internal/domain/season"
	"github.com/riskibarqy/slowpitch-league/internal/domain/stats"
	"github.com/riskibarqy/slowpitch-league/internal/domain/team"
	"github.com/riskibarqy/slowpitch-league/internal/domain/user"
	"github.com/riskibarqy/slowpitch-league/internal/engine"
	"github.com/riskibarqy/slowpitch-league/internal/platform/logging"
	"github.com/riskibarqy/slowpitch-league/internal/platform/resilience"
)

const (
	defaultBaseURL = "http://localhost:8080"
	maxBodyPreview = 256
)

var errLeagueTransient = crerr.New("league api transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the league REST server and implements engine.Remote.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight

	mu    sync.RWMutex
	token string
}

var _ engine.Remote = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "slowpitch-league-cli",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	client := &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		token:          strings.TrimSpace(cfg.Token),
	}
	client.breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("league api circuit breaker state changed", "from", from, "to", to)
	})
	return client
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Login(ctx context.Context, name, pin string) (Session, error) {
	var out Session
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", loginRequest{Name: name, Pin: pin}, &out); err != nil {
		return Session{}, fmt.Errorf("login name=%s: %w", name, err)
	}
	c.SetToken(out.Token)
	return out, nil
}

// Me returns the principal behind the current token.
func (c *Client) Me(ctx context.Context) (user.Principal, error) {
	var out user.Principal
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/me", nil, &out); err != nil {
		return user.Principal{}, fmt.Errorf("fetch principal: %w", err)
	}
	return out, nil
}

func (c *Client) CurrentSeason(ctx context.Context) (season.Season, error) {
	var out seasonDTO
	if err := c.doJSON(ctx, http.MethodGet, "/v1/seasons/current", nil, &out); err != nil {
		return season.Season{}, fmt.Errorf("fetch current season: %w", err)
	}
	return season.Season{
		ID:          out.SeasonID,
		Name:        out.Name,
		CurrentWeek: out.CurrentWeek,
		IsLocked:    out.IsLocked,
		IsActive:    true,
	}, nil
}

func (c *Client) SeasonTeams(ctx context.Context, seasonID string) ([]team.Identity, error) {
	var out []team.Identity
	if err := c.doJSON(ctx, http.MethodGet, seasonPath(seasonID, "/teams"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetch teams season_id=%s: %w", seasonID, err)
	}
	return out, nil
}

func (c *Client) Draft(ctx context.Context, seasonID string) ([]draft.Pick, error) {
	var out draftBody
	if err := c.doJSON(ctx, http.MethodGet, seasonPath(seasonID, "/draft"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetch draft season_id=%s: %w", seasonID, err)
	}
	return out.Picks, nil
}

func (c *Client) SaveDraft(ctx context.Context, seasonID string, picks []draft.Pick) error {
	if picks == nil {
		picks = []draft.Pick{}
	}
	if err := c.doJSON(ctx, http.MethodPut, seasonPath(seasonID, "/draft"), draftBody{Picks: picks}, nil); err != nil {
		return fmt.Errorf("save draft season_id=%s picks=%d: %w", seasonID, len(picks), err)
	}
	return nil
}

func (c *Client) WeeklyLineups(ctx context.Context, seasonID string, week int) ([]lineup.Row, error) {
	var out []lineup.Row
	if err := c.doJSON(ctx, http.MethodGet, weekPath(seasonID, week, "/lineups"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetch lineups season_id=%s week=%d: %w", seasonID, week, err)
	}
	for i := range out {
		out[i].SeasonID = seasonID
		out[i].Week = week
	}
	return out, nil
}

func (c *Client) SaveLineup(ctx context.Context, item lineup.NightLineup) error {
	ids := item.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	body := saveLineupRequest{TeamID: item.TeamID, Night: string(item.Night), PlayerIDs: ids}
	if err := c.doJSON(ctx, http.MethodPut, weekPath(item.SeasonID, item.Week, "/lineups"), body, nil); err != nil {
		return fmt.Errorf("save lineup season_id=%s week=%d team_id=%s night=%s: %w", item.SeasonID, item.Week, item.TeamID, item.Night, err)
	}
	return nil
}

func (c *Client) Scores(ctx context.Context, seasonID string) (map[int]map[string]float64, error) {
	var out map[string]map[string]float64
	if err := c.doJSON(ctx, http.MethodGet, seasonPath(seasonID, "/scores"), nil, &out); err != nil {
		return nil, fmt.Errorf("fetch scores season_id=%s: %w", seasonID, err)
	}

	byWeek := make(map[int]map[string]float64, len(out))
	for rawWeek, scores := range out {
		week, err := strconv.Atoi(rawWeek)
		if err != nil || week < 1 {
			c.logger.WarnContext(ctx, "skip score row with invalid week", "season_id", seasonID, "week", rawWeek)
			continue
		}
		byWeek[week] = scores
	}
	return byWeek, nil
}

func (c *Client) SaveScores(ctx context.Context, seasonID string, week int, scores []score.TeamScore) error {
	body := saveScoresRequest{Scores: make(map[string]float64, len(scores))}
	for _, item := range scores {
		body.Scores[item.TeamID] = item.Score
	}
	if err := c.doJSON(ctx, http.MethodPost, weekPath(seasonID, week, "/scores"), body, nil); err != nil {
		return fmt.Errorf("save scores season_id=%s week=%d: %w", seasonID, week, err)
	}
	return nil
}

func (c *Client) AdvanceWeek(ctx context.Context, seasonID string) (int, error) {
	var out seasonDTO
	if err := c.doJSON(ctx, http.MethodPost, seasonPath(seasonID, "/advance-week"), struct{}{}, &out); err != nil {
		return 0, fmt.Errorf("advance week season_id=%s: %w", seasonID, err)
	}
	return out.CurrentWeek, nil
}

func (c *Client) Players(ctx context.Context) ([]stats.DirectoryEntry, error) {
	var out []playerDTO
	if err := c.doJSON(ctx, http.MethodGet, "/v1/players", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch player directory: %w", err)
	}

	entries := make([]stats.DirectoryEntry, 0, len(out))
	for _, item := range out {
		entries = append(entries, stats.DirectoryEntry{PlayerID: item.ID, Name: item.Name})
	}
	return entries, nil
}

func (c *Client) SyncPlayers(ctx context.Context, names []string) (int, error) {
	var out syncPlayersResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/players/sync", syncPlayersRequest{Names: names}, &out); err != nil {
		return 0, fmt.Errorf("sync players names=%d: %w", len(names), err)
	}
	return out.Inserted, nil
}

// GetState returns the caller's stored snapshot, or nil when the server has none.
func (c *Client) GetState(ctx context.Context) ([]byte, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/v1/state", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch state: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

func (c *Client) PutState(ctx context.Context, raw []byte) error {
	if _, err := c.doRaw(ctx, http.MethodPut, "/v1/state", raw); err != nil {
		return fmt.Errorf("save state bytes=%d: %w", len(raw), err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, target any) error {
	var payload []byte
	if body != nil {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)
		if err := sonic.ConfigDefault.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = buf.B
	}

	data, err := c.doRaw(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if target == nil || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode league api payload: %w", err)
	}
	return nil
}

// doRaw runs one request and returns the envelope's data member.
func (c *Client) doRaw(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "league api circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return nil, classify(engine.ErrRemoteUnavailable, crerr.Wrap(err, "league api is temporarily unavailable"))
		}
	}

	run := func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, method, c.baseURL+path, payload)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	}

	var (
		out any
		err error
	)
	if method == http.MethodGet {
		out, err, _ = c.flight.Do(method+" "+path+" "+c.bearer(), run)
	} else {
		out, err = run()
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, classify(engine.ErrRemoteUnavailable, fmt.Errorf("decode league api envelope: %w", err))
	}
	if env.Error != nil {
		return nil, classify(engine.ErrRemoteRejected, fmt.Errorf("league api error: %s", env.Error.Message))
	}
	return env.Data, nil
}

func (c *Client) executeRequest(ctx context.Context, method, fullURL string, payload []byte) ([]byte, error) {
	retries := c.maxRetries
	if method == http.MethodPost {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, status, err := c.roundTrip(ctx, method, fullURL, payload)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errLeagueTransient, err)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: league api status=%d body=%s", errLeagueTransient, status, abbreviateBody(raw))
		default:
			return nil, statusError(status, raw)
		}

		if attempt == retries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: league api request failed", errLeagueTransient)
	}
	c.logger.WarnContext(ctx, "league api request failed", "method", method, "url", redactURL(fullURL), "error", lastErr)
	return nil, classify(engine.ErrRemoteUnavailable, lastErr)
}

// roundTrip copies the response body out before the pooled response is released.
func (c *Client) roundTrip(ctx context.Context, method, fullURL string, payload []byte) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func statusError(status int, raw []byte) error {
	message := abbreviateBody(raw)
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		message = env.Error.Message
	}

	err := fmt.Errorf("league api status=%d: %s", status, message)
	switch status {
	case http.StatusNotFound:
		return classify(engine.ErrRemoteNotFound, err)
	case http.StatusUnauthorized:
		// An expired token is fixed by logging in again, so the command stays queued.
		return classify(engine.ErrRemoteUnavailable, err)
	default:
		return classify(engine.ErrRemoteRejected, err)
	}
}

// classify tags err with one of the engine's remote sentinels.
func classify(kind, err error) error {
	return crerr.WithStack(fmt.Errorf("%w: %w", kind, err))
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errLeagueTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func seasonPath(seasonID, suffix string) string {
	return "/v1/seasons/" + url.PathEscape(seasonID) + suffix
}

func weekPath(seasonID string, week int, suffix string) string {
	return seasonPath(seasonID, "/weeks/"+strconv.Itoa(week)+suffix)
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > maxBodyPreview {
		return text[:maxBodyPreview] + "..."
	}
	return text
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.User = nil
	return parsed.String()
}
