package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

//go:generate moq -rm -out ../test/client_mock.go . Client

// Client performs single remote operations against the object store. No call is
// retried, a failed call is returned to the caller as is.
type Client interface {
	FetchClassByName(ctx context.Context, name string) (*types.ClassMetadata, error)
	FetchClassByID(ctx context.Context, classID string) (*types.ClassMetadata, error)
	FetchAttributeDefs(ctx context.Context, classID string) ([]types.AttributeDef, error)
	CreateObject(ctx context.Context, name, classID, parentID string) (string, error)
	SetAttributes(ctx context.Context, objectID string, attributes []types.WireAttribute) error
	RenameObject(ctx context.Context, objectID, name string) error
	GetObject(ctx context.Context, objectID string) (*types.RawObject, error)
	FindObjectsByClass(ctx context.Context, classID, rootID string) ([]types.ObjectRef, error)
	DeleteObject(ctx context.Context, objectID string) error
}

type ClientOption func(*storeClient)

func Debug(enabled string) ClientOption {
	return func(c *storeClient) {
		c.debug = (enabled == "true")
	}
}

// Credentials enables the password grant against the store's token endpoint
func Credentials(username, password, clientID, clientSecret string) ClientOption {
	return func(c *storeClient) {
		c.auth = &credentials{
			username:     username,
			password:     password,
			clientID:     clientID,
			clientSecret: clientSecret,
		}
	}
}

// AccessToken sets a fixed bearer token that is used instead of the password grant
func AccessToken(token string) ClientOption {
	return func(c *storeClient) {
		c.token = token
		c.tokenExpiry = time.Time{}
		c.auth = nil
	}
}

func RateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *storeClient) {
		if requestsPerSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

func Timeout(timeout time.Duration) ClientOption {
	return func(c *storeClient) {
		c.httpClient.Timeout = timeout
	}
}

func NewObjectStoreClient(baseURL string, options ...ClientOption) Client {
	c := &storeClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 5),
		now:     time.Now,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const (
	TraceAttributeObjectID string = "object-id"
	TraceAttributeClassID  string = "class-id"
)

var tracer = otel.Tracer("object-store-client")

type credentials struct {
	username     string
	password     string
	clientID     string
	clientSecret string
}

type storeClient struct {
	baseURL    string
	debug      bool
	httpClient http.Client
	limiter    *rate.Limiter

	auth        *credentials
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
	now         func() time.Time
}

type classDTO struct {
	ID         string                  `json:"Id"`
	Name       string                  `json:"Name"`
	Attributes map[string]attributeDTO `json:"Attributes,omitempty"`
}

type attributeDTO struct {
	ID          string          `json:"Id"`
	Name        string          `json:"Name"`
	Type        typeCode        `json:"Type"`
	Required    bool            `json:"Required"`
	Constraints []constraintDTO `json:"Constraints,omitempty"`
}

const (
	constraintLinkClass int = 1
	constraintLinkRoot  int = 3
)

type constraintDTO struct {
	Type         int    `json:"Type"`
	EntityID     string `json:"EntityId"`
	ObjectRootID string `json:"ObjectRootId"`
}

// typeCode accepts the attribute type either as a plain number or as an object
// carrying the number in its Id field.
type typeCode int

func (tc *typeCode) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*tc = 0
		return nil
	}

	var code int
	if err := json.Unmarshal(b, &code); err == nil {
		*tc = typeCode(code)
		return nil
	}

	obj := struct {
		ID int `json:"Id"`
	}{}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("unable to decode attribute type %s: %w", string(b), err)
	}

	*tc = typeCode(obj.ID)
	return nil
}

func (a attributeDTO) toAttributeDef(id string) types.AttributeDef {
	if a.ID != "" {
		id = a.ID
	}
	def := types.AttributeDef{
		ID:       id,
		Name:     a.Name,
		Type:     types.AttributeTypeFromCode(int(a.Type)),
		Required: a.Required,
	}

	for _, c := range a.Constraints {
		switch {
		case c.Type == constraintLinkClass && c.EntityID != "":
			def.LinkClassID = c.EntityID
		case c.Type == constraintLinkRoot && c.ObjectRootID != "":
			def.LinkRootID = c.ObjectRootID
		}
	}

	return def
}

func (d classDTO) toClassMetadata() *types.ClassMetadata {
	cm := &types.ClassMetadata{ID: d.ID, Name: d.Name}
	for id, a := range d.Attributes {
		cm.Attributes = append(cm.Attributes, a.toAttributeDef(id))
	}
	sortAttributes(cm.Attributes)
	return cm
}

func (c *storeClient) FetchClassByName(ctx context.Context, name string) (*types.ClassMetadata, error) {
	var err error

	ctx, span := tracer.Start(ctx, "fetch-class-by-name",
		trace.WithAttributes(attribute.String("class-name", name)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	classes := []classDTO{}
	err = c.getJSON(ctx, "/api/structure/entities?only=true", &classes)
	if err != nil {
		return nil, err
	}

	for _, cls := range classes {
		if cls.Name == name {
			return cls.toClassMetadata(), nil
		}
	}

	for _, cls := range classes {
		if strings.EqualFold(cls.Name, name) {
			return cls.toClassMetadata(), nil
		}
	}

	err = errors.NewClassNotFoundError(name)
	return nil, err
}

func (c *storeClient) FetchClassByID(ctx context.Context, classID string) (*types.ClassMetadata, error) {
	var err error

	ctx, span := tracer.Start(ctx, "fetch-class-by-id",
		trace.WithAttributes(attribute.String(TraceAttributeClassID, classID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	cls := classDTO{}
	err = c.getJSON(ctx, "/api/structure/entities/"+url.PathEscape(classID), &cls)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			err = errors.NewClassNotFoundError(classID)
		}
		return nil, err
	}

	return cls.toClassMetadata(), nil
}

func (c *storeClient) FetchAttributeDefs(ctx context.Context, classID string) ([]types.AttributeDef, error) {
	var err error

	ctx, span := tracer.Start(ctx, "fetch-attribute-defs",
		trace.WithAttributes(attribute.String(TraceAttributeClassID, classID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	attrs := []attributeDTO{}
	err = c.getJSON(ctx, "/api/structure/entities/"+url.PathEscape(classID)+"/attributes", &attrs)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			err = errors.NewClassNotFoundError(classID)
		}
		return nil, err
	}

	defs := make([]types.AttributeDef, 0, len(attrs))
	for _, a := range attrs {
		defs = append(defs, a.toAttributeDef(a.ID))
	}

	return defs, nil
}

func (c *storeClient) CreateObject(ctx context.Context, name, classID, parentID string) (string, error) {
	var err error

	ctx, span := tracer.Start(ctx, "create-object",
		trace.WithAttributes(attribute.String(TraceAttributeClassID, classID)),
		trace.WithAttributes(attribute.String("parent-id", parentID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	payload := map[string]any{
		"Name": name,
		"Entity": map[string]any{
			"Id":   classID,
			"Name": "forvalidation",
		},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := "/api/objects"
	if parentID != "" {
		endpoint += "?parent=" + url.QueryEscape(parentID)
	}

	response, responseBody, err := c.call(ctx, http.MethodPost, endpoint, bytes.NewBuffer(b), "application/json")
	if err != nil {
		return "", err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		err = errors.NewErrorFromResponse(response.StatusCode, responseBody)
		return "", err
	}

	created := struct {
		ID string `json:"Id"`
	}{}

	err = json.Unmarshal(responseBody, &created)
	if err != nil || created.ID == "" {
		err = fmt.Errorf("store did not return the id of the created object (%w)", errors.ErrInternal)
		return "", err
	}

	span.SetAttributes(attribute.String(TraceAttributeObjectID, created.ID))

	return created.ID, nil
}

func (c *storeClient) SetAttributes(ctx context.Context, objectID string, attributes []types.WireAttribute) error {
	var err error

	ctx, span := tracer.Start(ctx, "set-attributes",
		trace.WithAttributes(attribute.String(TraceAttributeObjectID, objectID)),
		trace.WithAttributes(attribute.Int("count", len(attributes))),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	payload := make([]types.WireAttribute, len(attributes))
	for i, a := range attributes {
		if a.Constraints == nil {
			a.Constraints = []any{}
		}
		payload[i] = a
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	response, responseBody, err := c.call(
		ctx, http.MethodPut, "/api/objects/"+url.PathEscape(objectID)+"/attributes", bytes.NewBuffer(b), "application/json",
	)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		err = errors.NewErrorFromResponse(response.StatusCode, responseBody)
		return err
	}

	return nil
}

func (c *storeClient) RenameObject(ctx context.Context, objectID, name string) error {
	var err error

	ctx, span := tracer.Start(ctx, "rename-object",
		trace.WithAttributes(attribute.String(TraceAttributeObjectID, objectID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response, responseBody, err := c.call(
		ctx, http.MethodPut, "/api/objects/"+url.PathEscape(objectID)+"/name?new="+url.QueryEscape(name), nil, "",
	)
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		err = errors.NewErrorFromResponse(response.StatusCode, responseBody)
		return err
	}

	return nil
}

func (c *storeClient) GetObject(ctx context.Context, objectID string) (*types.RawObject, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-object",
		trace.WithAttributes(attribute.String(TraceAttributeObjectID, objectID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	obj := &types.RawObject{}
	err = c.getJSON(ctx, "/api/objects/"+url.PathEscape(objectID), obj)
	if err != nil {
		return nil, err
	}

	path := struct {
		AncestorsOrSelf []struct {
			ID string `json:"Id"`
		} `json:"AncestorsOrSelf"`
	}{}

	err = c.getJSON(ctx, "/api/objects/"+url.PathEscape(objectID)+"/path", &path)
	if err != nil {
		return nil, err
	}

	if n := len(path.AncestorsOrSelf); n > 1 {
		obj.ParentID = path.AncestorsOrSelf[n-2].ID
	}

	return obj, nil
}

const (
	searchFilterByParent int = 4
	searchFilterByClass  int = 5
	searchPageSize       int = 500
)

type searchFilter struct {
	Type  int    `json:"Type"`
	Value string `json:"Value"`
}

type searchRequest struct {
	Filters    []searchFilter `json:"Filters"`
	Conditions []any          `json:"Conditions"`
}

type searchResponse struct {
	Result []struct {
		Object struct {
			ID   string `json:"Id"`
			Name string `json:"Name"`
		} `json:"Object"`
	} `json:"Result"`
	Total int `json:"Total"`
}

// FindObjectsByClass returns every object of the class, limited to the subtree
// below rootID unless it is empty. Results are fetched one page at a time.
func (c *storeClient) FindObjectsByClass(ctx context.Context, classID, rootID string) ([]types.ObjectRef, error) {
	var err error

	ctx, span := tracer.Start(ctx, "find-objects-by-class",
		trace.WithAttributes(attribute.String(TraceAttributeClassID, classID)),
		trace.WithAttributes(attribute.String("root-id", rootID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	query := searchRequest{
		Filters:    []searchFilter{{Type: searchFilterByClass, Value: classID}},
		Conditions: []any{},
	}
	if rootID != "" {
		query.Filters = append(query.Filters, searchFilter{Type: searchFilterByParent, Value: rootID})
	}

	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	found := []types.ObjectRef{}

	for skip := 0; ; skip += searchPageSize {
		endpoint := fmt.Sprintf("/api/objects/search?take=%d&skip=%d", searchPageSize, skip)

		var response *http.Response
		var responseBody []byte

		response, responseBody, err = c.call(
			ctx, http.MethodPost, endpoint, bytes.NewReader(b), "application/json", methodOverride(http.MethodGet),
		)
		if err != nil {
			return nil, err
		}

		if response.StatusCode != http.StatusOK {
			err = errors.NewErrorFromResponse(response.StatusCode, responseBody)
			return nil, err
		}

		page := searchResponse{}
		err = json.Unmarshal(responseBody, &page)
		if err != nil {
			err = fmt.Errorf("failed to decode search response: %s (%w)", err.Error(), errors.ErrInternal)
			return nil, err
		}

		for _, r := range page.Result {
			found = append(found, types.ObjectRef{ID: r.Object.ID, Name: r.Object.Name})
		}

		if len(page.Result) == 0 || skip+searchPageSize >= page.Total {
			break
		}
	}

	span.SetAttributes(attribute.Int("found", len(found)))

	return found, nil
}

func (c *storeClient) DeleteObject(ctx context.Context, objectID string) error {
	var err error

	ctx, span := tracer.Start(ctx, "delete-object",
		trace.WithAttributes(attribute.String(TraceAttributeObjectID, objectID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response, responseBody, err := c.call(ctx, http.MethodDelete, "/api/objects/"+url.PathEscape(objectID), nil, "")
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNoContent {
		err = errors.NewErrorFromResponse(response.StatusCode, responseBody)
		return err
	}

	return nil
}

func (c *storeClient) getJSON(ctx context.Context, endpoint string, result any) error {
	response, responseBody, err := c.call(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return err
	}

	if response.StatusCode != http.StatusOK {
		return errors.NewErrorFromResponse(response.StatusCode, responseBody)
	}

	err = json.Unmarshal(responseBody, result)
	if err != nil {
		if c.debug && len(responseBody) < 1000 {
			err = fmt.Errorf("unmarshaling of %s failed with err %s", string(responseBody), err.Error())
		}
		return fmt.Errorf("failed to decode response: %s (%w)", err.Error(), errors.ErrInternal)
	}

	return nil
}

func methodOverride(method string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("X-HTTP-Method-Override", method)
	}
}

func (c *storeClient) call(ctx context.Context, method, endpoint string, body io.Reader, contentType string, headers ...func(*http.Request)) (*http.Response, []byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Add("Accept", "application/json")
	if contentType != "" {
		req.Header.Add("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}
	for _, h := range headers {
		h(req)
	}

	resp, respBody, err := c.do(req)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.dropToken(token)
	}

	return resp, respBody, nil
}

func (c *storeClient) do(req *http.Request) (*http.Response, []byte, error) {
	ctx := req.Context()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("request was not sent: %w (%w)", err, errors.ErrRemoteUnavailable)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send request: %w (%w)", err, errors.ErrRemoteUnavailable)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.NewRemoteUnavailableError(fmt.Sprintf("failed to read response body: %s", err.Error()))
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
	}

	return resp, respBody, nil
}

// tokens are refreshed this long before the store considers them expired
const tokenExpiryMargin time.Duration = 30 * time.Second

func (c *storeClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auth == nil {
		return c.token, nil
	}

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", c.auth.username)
	form.Set("password", c.auth.password)
	form.Set("client_id", c.auth.clientID)
	form.Set("client_secret", c.auth.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/connect/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %s (%w)", err.Error(), errors.ErrInternal)
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusBadRequest {
			return "", errors.NewUnauthorizedError(fmt.Sprintf("token request was rejected: %s", string(respBody)))
		}
		return "", errors.NewErrorFromResponse(resp.StatusCode, respBody)
	}

	token := struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}{}

	err = json.Unmarshal(respBody, &token)
	if err != nil || token.AccessToken == "" {
		return "", errors.NewUnauthorizedError("token endpoint did not return an access token")
	}

	if token.ExpiresIn <= 0 {
		token.ExpiresIn = 3600
	}

	c.token = token.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)

	return c.token, nil
}

func (c *storeClient) dropToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.auth != nil && c.token == token {
		c.token = ""
	}
}

func sortAttributes(defs []types.AttributeDef) {
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
}
