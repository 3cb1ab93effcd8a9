package logic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleData = `{
	"payload": {
		"v": [{"dn": 2, "sd": 2, "dt": "2021-12-01", "mp": "EU/1/20/1528"}],
		"nam": {"fn": "Mustermann"}
	},
	"meta": {"type": "vaccination", "expires": null},
	"external": {"now": "2022-01-15T12:00:00Z"}
}`

func eval(t *testing.T, expr string) any {
	t.Helper()
	v, err := Evaluate(json.RawMessage(expr), []byte(sampleData))
	require.NoError(t, err)
	return v
}

func TestEvaluate_Operators(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want any
	}{
		{"literal", `true`, true},
		{"var by dotted path", `{"var": "payload.v.0.dn"}`, 2.0},
		{"var of json null exists", `{"var": "meta.expires"}`, nil},
		{"var default used when absent", `{"var": ["payload.r.0.fr", "none"]}`, "none"},
		{"if picks first true branch", `{"if": [false, "a", true, "b", "c"]}`, "b"},
		{"if falls through to else", `{"if": [false, "a", "c"]}`, "c"},
		{"and short circuits on falsy", `{"and": [true, 0, {"var": "nowhere"}]}`, 0.0},
		{"or returns first truthy", `{"or": [false, "", "x"]}`, "x"},
		{"not", `{"!": [[]]}`, true},
		{"double not", `{"!!": ["0"]}`, true},
		{"loose equality coerces", `{"==": [1, "1"]}`, true},
		{"strict equality does not", `{"===": [1, "1"]}`, false},
		{"loose inequality", `{"!=": ["EU/1/20/1528", {"var": "payload.v.0.mp"}]}`, false},
		{"strict inequality", `{"!==": [2, "2"]}`, true},
		{"greater or equal on numbers", `{">=": [{"var": "payload.v.0.dn"}, {"var": "payload.v.0.sd"}]}`, true},
		{"less than between form", `{"<": [1, 2, 3]}`, true},
		{"less or equal on timestamps", `{"<=": ["2021-12-01", {"var": "external.now"}]}`, true},
		{"in array", `{"in": [{"var": "meta.type"}, ["vaccination", "recovery"]]}`, true},
		{"in string", `{"in": ["Muster", {"var": "payload.nam.fn"}]}`, true},
		{"plus", `{"+": [1, "2", 3]}`, 6.0},
		{"after with plusTime", `{"after": [{"var": "external.now"}, {"plusTime": [{"var": "payload.v.0.dt"}, 14, "day"]}]}`, true},
		{"before", `{"before": [{"plusTime": ["2022-01-15T00:00:00Z", 1, "hour"]}, {"var": "external.now"}]}`, true},
		{"not-before with equal dates", `{"not-before": ["2022-01-15T12:00:00Z", {"var": "external.now"}]}`, true},
		{"not-after", `{"not-after": [{"var": "external.now"}, "2022-01-01"]}`, false},
		{"array literal evaluates items", `[1, {"var": "payload.v.0.sd"}]`, []any{1.0, 2.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.expr))
		})
	}
}

func TestEvaluate_PlusTimeUnits(t *testing.T) {
	v := eval(t, `{"plusTime": ["2022-01-31T00:00:00Z", -1, "month"]}`)
	got, ok := v.(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC), got)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr error
	}{
		{"missing var without default", `{"var": "payload.r.0.fr"}`, ErrMissingAttribute},
		{"unknown operator", `{"reduce": [[], 1, 0]}`, ErrMalformedExpression},
		{"two operators in one object", `{"==": [1, 1], "!=": [1, 2]}`, ErrMalformedExpression},
		{"empty expression", ``, ErrMalformedExpression},
		{"invalid json", `{"==": [1,`, ErrMalformedExpression},
		{"greater than has no between form", `{">": [3, 2, 1]}`, ErrMalformedExpression},
		{"greater or equal has no between form", `{">=": [3, 2, 1]}`, ErrMalformedExpression},
		{"comparison of mismatched types", `{"<": [true, "2022-01-01"]}`, ErrMalformedExpression},
		{"plusTime bad unit", `{"plusTime": ["2022-01-01", 1, "fortnight"]}`, ErrMalformedExpression},
		{"plusTime bad date", `{"plusTime": ["yesterday", 1, "day"]}`, ErrMalformedExpression},
		{"before needs dates", `{"before": [1, 2]}`, ErrMalformedExpression},
		{"not takes one operand", `{"!": [true, false]}`, ErrMalformedExpression},
		{"missing var inside branch taken", `{"if": [true, {"var": "nope"}, 1]}`, ErrMissingAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(json.RawMessage(tt.expr), []byte(sampleData))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_DepthLimit(t *testing.T) {
	expr := `true`
	for i := 0; i < maxDepth+2; i++ {
		expr = `{"!!": [` + expr + `]}`
	}
	_, err := Evaluate(json.RawMessage(expr), []byte(`{}`))
	assert.ErrorIs(t, err, ErrMalformedExpression)
}

func TestTest_ReducesToBoolean(t *testing.T) {
	ok, err := Test(json.RawMessage(`{"var": "payload.v"}`), []byte(sampleData))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Test(json.RawMessage(`{"var": ["payload.t", []]}`), []byte(sampleData))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(""))
	assert.False(t, Truthy([]any{}))
	assert.True(t, Truthy(map[string]any{}))
	assert.True(t, Truthy(time.Now()))
}
