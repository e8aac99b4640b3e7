package xbatch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/macconv/pkg/lookup/xvendor"
	"github.com/omeyang/macconv/pkg/observability/xlog"
)

// recordingPacer 记录等待时长，不真正等待
type recordingPacer struct {
	waits []time.Duration
}

func (p *recordingPacer) Wait(ctx context.Context, d time.Duration) error {
	p.waits = append(p.waits, d)
	return ctx.Err()
}

func threeRows() SliceSource {
	return SliceSource{
		{Name: "desk-01", IP: "10.0.0.1", MAC: "D8:3A:DD:EE:55:22"},
		{Name: "printer", IP: "10.0.0.2", MAC: "D83ADDEE552"},
		{Name: "nas", IP: "10.0.0.3", MAC: "00-11-22-aa-bb-cc"},
	}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestProcess_InvalidRowKeepsOrder(t *testing.T) {
	pacer := &recordingPacer{}
	p := New(nil, WithPacer(pacer))

	lines, err := p.Process(context.Background(), threeRows())
	require.NoError(t, err)

	assert.Equal(t, []string{
		`"desk-01","10.0.0.1","D8-3A-DD-EE-55-22"`,
		`"printer","10.0.0.2",""`,
		`"nas","10.0.0.3","00-11-22-AA-BB-CC"`,
	}, texts(lines))
	assert.True(t, lines[0].Valid())
	assert.False(t, lines[1].Valid())
	assert.Nil(t, lines[0].Vendor)
	assert.Equal(t, []int{1, 2, 3}, []int{lines[0].Row.Number, lines[1].Row.Number, lines[2].Row.Number})
	assert.Empty(t, pacer.waits)
}

func TestProcess_SeparatorAndCase(t *testing.T) {
	p := New(nil, WithSeparator(":"), WithLowercase(true))

	lines, err := p.Process(context.Background(), SliceSource{{Name: "a", IP: "b", MAC: "E8-9C-25-DC-A5-EA"}})
	require.NoError(t, err)
	assert.Equal(t, `"a","b","e8:9c:25:dc:a5:ea"`, lines[0].Text)

	p = New(nil, WithSeparator(""))
	lines, err = p.Process(context.Background(), SliceSource{{MAC: "e8-9c-25-dc-a5-ea"}})
	require.NoError(t, err)
	assert.Equal(t, `"","","E89C25DCA5EA"`, lines[0].Text)
}

func TestProcess_VendorLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockResolver(ctrl)
	gomock.InOrder(
		resolver.EXPECT().Resolve(gomock.Any(), "D83ADD").
			Return(xvendor.Result{Kind: xvendor.Found, Vendor: "Raspberry Pi Trading Ltd", Attempts: 1}),
		resolver.EXPECT().Resolve(gomock.Any(), "001122").
			Return(xvendor.Result{Kind: xvendor.LookupFailed, Attempts: 3}),
	)

	pacer := &recordingPacer{}
	p := New(resolver, WithVendorLookup(true), WithPacer(pacer))

	lines, err := p.Process(context.Background(), threeRows())
	require.NoError(t, err)

	assert.Equal(t, []string{
		`"desk-01","10.0.0.1","D8-3A-DD-EE-55-22","Raspberry Pi Trading Ltd"`,
		`"printer","10.0.0.2","",""`,
		`"nas","10.0.0.3","00-11-22-AA-BB-CC","Lookup Failed"`,
	}, texts(lines))
	assert.Nil(t, lines[1].Vendor)
	require.NotNil(t, lines[2].Vendor)
	assert.Equal(t, xvendor.LookupFailed, lines[2].Vendor.Kind)

	// 两次网络查询之间等待一次
	assert.Equal(t, []time.Duration{DefaultPaceAnonymous}, pacer.waits)
}

func TestProcess_Pacing(t *testing.T) {
	network := xvendor.Result{Kind: xvendor.Found, Vendor: "Dell Inc.", Attempts: 1}
	cached := xvendor.Result{Kind: xvendor.Found, Vendor: "Dell Inc.", Cached: true}
	skipped := xvendor.Result{Kind: xvendor.LookupFailed}

	tests := []struct {
		name          string
		authenticated bool
		results       []xvendor.Result
		want          []time.Duration
	}{
		{
			name:    "anonymous",
			results: []xvendor.Result{network, network, network},
			want:    []time.Duration{DefaultPaceAnonymous, DefaultPaceAnonymous},
		},
		{
			name:          "authenticated",
			authenticated: true,
			results:       []xvendor.Result{network, network, network},
			want:          []time.Duration{DefaultPaceAuthenticated, DefaultPaceAuthenticated},
		},
		{
			name:    "cache_hits",
			results: []xvendor.Result{cached, cached, cached},
			want:    nil,
		},
		{
			name:    "cache_hit_between_lookups",
			results: []xvendor.Result{network, cached, network},
			want:    []time.Duration{DefaultPaceAnonymous},
		},
		{
			name:    "short_circuited",
			results: []xvendor.Result{skipped, network, skipped},
			want:    []time.Duration{DefaultPaceAnonymous},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			resolver := NewMockResolver(ctrl)
			calls := make([]any, 0, len(tt.results))
			for _, r := range tt.results {
				calls = append(calls, resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(r))
			}
			gomock.InOrder(calls...)

			rows := SliceSource{{MAC: "D83ADDEE5522"}, {MAC: "D83ADDEE5523"}, {MAC: "D83ADDEE5524"}}
			pacer := &recordingPacer{}
			p := New(resolver,
				WithVendorLookup(true),
				WithAuthenticated(tt.authenticated),
				WithPacer(pacer))

			_, err := p.Process(context.Background(), rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pacer.waits)
		})
	}
}

func TestProcess_CustomPacing(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(xvendor.Result{Kind: xvendor.NotFound, Attempts: 1}).Times(2)

	pacer := &recordingPacer{}
	p := New(resolver, WithVendorLookup(true), WithPacer(pacer), WithPacing(2*time.Second, -1))

	lines, err := p.Process(context.Background(), SliceSource{{MAC: "000000000001"}, {MAC: "000000000002"}})
	require.NoError(t, err)
	assert.Equal(t, `"","","00-00-00-00-00-02","Not Found"`, lines[1].Text)
	assert.Equal(t, []time.Duration{2 * time.Second}, pacer.waits)
}

func TestProcess_Progress(t *testing.T) {
	var got [][2]int
	p := New(nil, WithProgress(ProgressFunc(func(current, total int) {
		got = append(got, [2]int{current, total})
	})))

	_, err := p.Process(context.Background(), threeRows())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, got)
}

func TestProcess_Errors(t *testing.T) {
	_, err := New(nil).Process(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilSource)

	_, err = New(nil, WithVendorLookup(true)).Process(context.Background(), threeRows())
	require.ErrorIs(t, err, ErrNilResolver)
}

func TestLines_CanceledBetweenRows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(nil, WithProgress(ProgressFunc(func(current, _ int) {
		if current == 1 {
			cancel()
		}
	})))

	lines, err := p.Process(ctx, threeRows())
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, lines, 1)
}

func TestLines_CanceledDuringPacing(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(xvendor.Result{Kind: xvendor.Found, Vendor: "Dell Inc.", Attempts: 1}).Times(1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	p := New(resolver, WithVendorLookup(true), WithPacing(time.Hour, time.Hour))

	start := time.Now()
	lines, err := p.Process(ctx, threeRows())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	// 第 2 行地址无效不查询，第 3 行查询前的等待被截断
	assert.Len(t, lines, 2)
	assert.Less(t, time.Since(start), time.Minute)
}

func TestLines_CanceledDuringLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockResolver(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) xvendor.Result {
			cancel()
			return xvendor.Result{Kind: xvendor.LookupFailed, Attempts: 1}
		})

	lines, err := New(resolver, WithVendorLookup(true)).Process(ctx, threeRows())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, lines)
}

func TestLines_EarlyBreak(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "D83ADD").
		Return(xvendor.Result{Kind: xvendor.Found, Vendor: "Dell Inc.", Attempts: 1}).Times(1)

	p := New(resolver, WithVendorLookup(true), WithPacer(&recordingPacer{}))

	n := 0
	for line, err := range p.Lines(context.Background(), threeRows()) {
		require.NoError(t, err)
		assert.Equal(t, "desk-01", line.Row.Name)
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestLines_LogsCarryRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetFormat("json").SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rows := threeRows()
	rows[2].Short = true
	_, err = New(nil, WithLogger(logger)).Process(context.Background(), rows)
	require.NoError(t, err)

	var runIDs []string
	var warnings []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		id, _ := rec[xlog.KeyRunID].(string)
		runIDs = append(runIDs, id)
		if rec["level"] == "WARN" {
			warnings = append(warnings, rec["msg"].(string))
		}
	}

	require.NotEmpty(t, runIDs)
	for _, id := range runIDs {
		assert.Equal(t, runIDs[0], id)
	}
	assert.NotEmpty(t, runIDs[0])
	assert.Equal(t, []string{"invalid MAC address", "row has missing columns"}, warnings)
}

func TestLines_KeepsCallerRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	ctx := xlog.WithRunID(context.Background(), "fixed-run")
	_, err = New(nil, WithLogger(logger)).Process(ctx, threeRows())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "run_id=fixed-run")
}

func TestWriteLines(t *testing.T) {
	lines, err := New(nil).Process(context.Background(), threeRows())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, lines))
	assert.Equal(t, strings.Join(texts(lines), "\n")+"\n", buf.String())

	require.NoError(t, WriteLines(&buf, nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteLines_Error(t *testing.T) {
	lines, err := New(nil).Process(context.Background(), threeRows())
	require.NoError(t, err)
	assert.Error(t, WriteLines(failingWriter{}, lines))
}

func TestRender(t *testing.T) {
	row := Row{Name: "a", IP: "b"}
	assert.Equal(t, `"a","b","C"`, Render(row, "C", nil, false))
	assert.Equal(t, `"a","b","C",""`, Render(row, "C", nil, true))
	assert.Equal(t, `"a","b","","Not Found"`, Render(row, "", &xvendor.Result{Kind: xvendor.NotFound}, true))
}

func TestTimerPacer(t *testing.T) {
	var p TimerPacer
	assert.NoError(t, p.Wait(context.Background(), 0))
	assert.NoError(t, p.Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, p.Wait(ctx, 0), context.Canceled)
}
