package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRowSpec(t *testing.T) {
	spec, err := parseRowSpec("type=Rent, centre=2,entity=Tenant,amount=1,000.50,date=2024-04-01,remarks=first, partial")
	require.NoError(t, err)
	assert.Equal(t, rowSpec{
		Type:    "Rent",
		Centre:  "2",
		Entity:  "Tenant",
		Amount:  "1,000.50",
		Date:    "2024-04-01",
		Remarks: "first, partial",
	}, spec)

	_, err = parseRowSpec("400")
	assert.Error(t, err)

	_, err = parseRowSpec("type=1,colour=red")
	assert.ErrorContains(t, err, `unknown key "colour"`)
}

func TestResolve(t *testing.T) {
	offered := []named{{1, "Rent"}, {2, "Supplies"}}

	id, err := resolve("transaction type", "rent", offered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = resolve("transaction type", "2", offered)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	_, err = resolve("transaction type", "9", offered)
	assert.EqualError(t, err, "transaction type 9 is not offered for this transaction")

	_, err = resolve("transaction type", "Suplies", offered)
	assert.EqualError(t, err, `unknown transaction type "Suplies", did you mean "Supplies"?`)

	_, err = resolve("transaction type", "Payroll", offered)
	assert.EqualError(t, err, `unknown transaction type "Payroll"`)

	id, err = resolve("asset", "", offered)
	require.NoError(t, err)
	assert.Zero(t, id)
}

// fakeAPI serves a bank account holding one unclassified debit of 1000.00 (id 42) and one
// split credit (id 43) with two children.
type fakeAPI struct {
	mu    sync.Mutex
	posts map[string][]map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get("Authorization") != "Bearer tok" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Authentication credentials were not provided."}`)
		return
	}

	switch r.URL.Path {
	case "/api/v1/transaction-types/":
		_, _ = io.WriteString(w, `[{"transaction_type_id":1,"name":"Rent","direction":"Credit","status":"Active"},{"transaction_type_id":2,"name":"Supplies","direction":"Debit","status":"Active"}]`)
	case "/api/v1/cost-centres/":
		_, _ = io.WriteString(w, `[{"cost_centre_id":5,"name":"HQ","transaction_direction":"Debit","is_active":true}]`)
	case "/api/v1/entities/":
		_, _ = io.WriteString(w, `[{"id":7,"name":"Tenant","entity_type":"Tenant","status":"Active"}]`)
	case "/api/v1/assets/", "/api/v1/contracts/":
		_, _ = io.WriteString(w, `[]`)
	case "/api/v1/tx-classify/unclassified/":
		if r.URL.Query().Get("unclassified_only") == "0" {
			_, _ = io.WriteString(w, `{"results":[
				{"id":43,"transaction_date":"2024-04-11","narration":"RENT APR","signed_amount":"900.00","active_count":2,"status":"Split Child","is_split_child":true,
				 "child":{"classification_id":"c-1","amount":"300.00","value_date":"2024-04-11","transaction_type":"Rent","cost_centre":"HQ","entity":"Tenant"}},
				{"id":43,"transaction_date":"2024-04-11","narration":"RENT APR","signed_amount":"900.00","active_count":2,"status":"Split Child","is_split_child":true,
				 "child":{"classification_id":"c-2","amount":"600.00","value_date":"2024-04-11","transaction_type":"Rent","cost_centre":"HQ","entity":"Tenant"}}
			],"count":1,"limit":500,"offset":0}`)
			return
		}
		_, _ = io.WriteString(w, `{"results":[{"id":42,"transaction_date":"2024-04-10","narration":"OFFICE SUPPLIES","signed_amount":"-1000.00","active_count":0,"status":"Unclassified"}],"count":1,"limit":200,"offset":0}`)
	case "/api/v1/tx-classify/split/", "/api/v1/tx-classify/resplit/", "/api/v1/tx-classify/classify/", "/api/v1/tx-classify/reclassify/":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.posts[r.URL.Path] = append(f.posts[r.URL.Path], body)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		if rows, ok := body["rows"].([]any); ok {
			_ = json.NewEncoder(w).Encode(map[string]int{"children_count": len(rows)})
			return
		}
		_, _ = io.WriteString(w, `{"classification_id":"new-1","created_at":"2024-05-01T10:00:00Z"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	}
}

func runCLI(t *testing.T, api http.Handler, args ...string) (string, error) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	full := append([]string{"--api-url", srv.URL + "/api/v1", "--token", "tok"}, args...)
	err := Execute(context.Background(), &out, &errOut, full)
	return out.String(), err
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{posts: map[string][]map[string]any{}}
}

func TestList_Table(t *testing.T) {
	out, err := runCLI(t, newFakeAPI(), "list", "--bank", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "OFFICE SUPPLIES")
	assert.Contains(t, out, "-1,000.00")
	assert.Contains(t, out, "Showing 1-1 of 1 transactions")
}

func TestList_FooterPointsToPreviousPage(t *testing.T) {
	out, err := runCLI(t, newFakeAPI(), "list", "--bank", "3", "--limit", "100", "--offset", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "previous page: --offset 50")
	assert.NotContains(t, out, "next page")
}

func TestList_JSON(t *testing.T) {
	out, err := runCLI(t, newFakeAPI(), "list", "--bank", "3", "-o", "json")
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.EqualValues(t, 1, resp["count"])
}

func TestList_YAMLUsesWireNames(t *testing.T) {
	out, err := runCLI(t, newFakeAPI(), "list", "--bank", "3", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "signed_amount: \"-1000.00\"")
}

func TestList_RequiresBank(t *testing.T) {
	_, err := runCLI(t, newFakeAPI(), "list")
	assert.ErrorContains(t, err, "--bank is required")
}

func TestSplit_SendsRows(t *testing.T) {
	api := newFakeAPI()
	out, err := runCLI(t, api, "split", "--bank", "3", "--txn", "42",
		"--row", "type=Supplies,centre=HQ,entity=Tenant,amount=400",
		"--row", "type=2,centre=5,entity=7,amount=600.00,remarks=printer")
	require.NoError(t, err)
	assert.Contains(t, out, "2 classifications created")

	posts := api.posts["/api/v1/tx-classify/split/"]
	require.Len(t, posts, 1)
	rows := posts[0]["rows"].([]any)
	first := rows[0].(map[string]any)
	assert.Equal(t, "400.00", first["amount"])
	assert.Equal(t, "Split part 1/2", first["remarks"])
	assert.Equal(t, "2024-04-10", first["value_date"])
	assert.Equal(t, "printer", rows[1].(map[string]any)["remarks"])
}

func TestSplit_ImbalancedIsNotSent(t *testing.T) {
	api := newFakeAPI()
	_, err := runCLI(t, api, "split", "--bank", "3", "--txn", "42",
		"--row", "type=Supplies,centre=HQ,entity=Tenant,amount=400",
		"--row", "type=Supplies,centre=HQ,entity=Tenant,amount=600.01")
	assert.EqualError(t, err, "Split total 1000.01 must equal transaction amount 1000.00.")
	assert.Empty(t, api.posts)
}

func TestClassify_CreditTypeIsNotOfferedForDebit(t *testing.T) {
	api := newFakeAPI()
	_, err := runCLI(t, api, "classify", "--bank", "3", "--txn", "42", "--type", "Rent", "--centre", "HQ", "--entity", "Tenant")
	assert.ErrorContains(t, err, `unknown transaction type "Rent"`)
	assert.Empty(t, api.posts)
}

func TestClassify_SendsExpectedAmount(t *testing.T) {
	api := newFakeAPI()
	out, err := runCLI(t, api, "classify", "--bank", "3", "--txn", "42", "--type", "supplies", "--centre", "HQ", "--entity", "Tenant")
	require.NoError(t, err)
	assert.Contains(t, out, "classification new-1")

	body := api.posts["/api/v1/tx-classify/classify/"][0]
	assert.Equal(t, "1000.00", body["amount"])
	assert.Equal(t, "Direct classification", body["remarks"])
}

func TestResplit_NeedsClassificationOfSplit(t *testing.T) {
	_, err := runCLI(t, newFakeAPI(), "resplit", "--bank", "3", "--txn", "43", "--row", "type=Rent,centre=HQ,entity=Tenant,amount=300")
	assert.EqualError(t, err, "transaction 43 is split, pass --classification with one of: c-1, c-2")
}

func TestResplit_BalancesAgainstChild(t *testing.T) {
	api := newFakeAPI()
	_, err := runCLI(t, api, "resplit", "--bank", "3", "--txn", "43", "--classification", "c-1",
		"--row", "type=Rent,centre=HQ,entity=Tenant,amount=100",
		"--row", "type=Rent,centre=HQ,entity=Tenant,amount=200")
	require.NoError(t, err)

	body := api.posts["/api/v1/tx-classify/resplit/"][0]
	assert.Equal(t, "c-1", body["classification_id"])
	rows := body["rows"].([]any)
	assert.Equal(t, "Re-split", rows[0].(map[string]any)["remarks"])
	assert.Equal(t, "Re-split part 2/2", rows[1].(map[string]any)["remarks"])
}

func TestNotLoggedIn(t *testing.T) {
	srv := httptest.NewServer(newFakeAPI())
	defer srv.Close()

	var out, errOut bytes.Buffer
	err := Execute(context.Background(), &out, &errOut, []string{"--api-url", srv.URL + "/api/v1", "list", "--bank", "3"})
	assert.ErrorContains(t, err, "not logged in")
}

func TestEnvironmentProvidesToken(t *testing.T) {
	t.Setenv("TXC_TOKEN", "tok")
	srv := httptest.NewServer(newFakeAPI())
	defer srv.Close()

	var out, errOut bytes.Buffer
	err := Execute(context.Background(), &out, &errOut, []string{"--api-url", srv.URL + "/api/v1", "lookups", "centres"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "HQ")
}

func TestLookups_SuggestsKind(t *testing.T) {
	_, err := runCLI(t, newFakeAPI(), "lookups", "entites")
	assert.EqualError(t, err, `invalid arguments: unknown lookup "entites", did you mean "entities"?`)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := runCLI(t, newFakeAPI(), "-o", "xml", "lookups", "types")
	assert.ErrorContains(t, err, "unknown output format")
}

// pagedAPI spreads a bank account over two listing pages. The first page holds 500 split
// transactions flattened to two rows each; transaction 999, classified once, is on the second.
type pagedAPI struct {
	*fakeAPI
	offsets []string
}

func (p *pagedAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/tx-classify/unclassified/" || r.Header.Get("Authorization") != "Bearer tok" {
		p.fakeAPI.ServeHTTP(w, r)
		return
	}
	offset := r.URL.Query().Get("offset")
	p.mu.Lock()
	p.offsets = append(p.offsets, offset)
	p.mu.Unlock()

	rows := []map[string]any{}
	switch offset {
	case "0":
		for id := 1; id <= 500; id++ {
			for part := 1; part <= 2; part++ {
				rows = append(rows, map[string]any{
					"id": id, "transaction_date": "2024-04-01", "narration": "SPLIT", "signed_amount": "200.00",
					"active_count": 2, "status": "Split Child", "is_split_child": true,
					"child": map[string]any{"classification_id": fmt.Sprintf("s-%d-%d", id, part), "amount": "100.00", "transaction_type": "Rent", "cost_centre": "HQ", "entity": "Tenant"},
				})
			}
		}
	case "500":
		rows = append(rows, map[string]any{
			"id": 999, "transaction_date": "2024-03-01", "narration": "RENT MAR", "signed_amount": "250.00",
			"active_count": 1, "status": "Classified",
			"children": []map[string]any{{"classification_id": "c-9", "amount": "250.00", "value_date": "2024-03-01", "transaction_type": "Rent", "cost_centre": "HQ", "entity": "Tenant"}},
		})
	}
	w.Header().Set("Content-Type", "application/json")
	n, _ := strconv.Atoi(offset)
	_ = json.NewEncoder(w).Encode(map[string]any{"results": rows, "count": 501, "limit": 500, "offset": n})
}

func TestReclassify_FindsTargetBehindFlattenedSplits(t *testing.T) {
	api := &pagedAPI{fakeAPI: newFakeAPI()}
	_, err := runCLI(t, api, "reclassify", "--bank", "1", "--txn", "999", "--type", "Rent", "--centre", "HQ", "--entity", "Tenant")
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "500"}, api.offsets)
	posts := api.posts["/api/v1/tx-classify/reclassify/"]
	require.Len(t, posts, 1)
	assert.Equal(t, "c-9", posts[0]["classification_id"])
}
