package rest

import (
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/dataprovider/dataprovider"
)

func TestUpdateMany_DropsRejectedIDs(t *testing.T) {
	backend := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/2") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		_, _ = w.Write([]byte(`{"id":1}`))
	})
	p := newProvider(t, backend.URL)

	out, err := p.UpdateMany(t.Context(), posts, dataprovider.UpdateManyParams{
		IDs:  []dataprovider.Identifier{num(1), num(2)},
		Data: dataprovider.Fields{"title": "x"},
	})
	if err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}
	if len(out.Data) != 1 || out.Data[0].String() != "1" {
		t.Errorf("ids = %v, want [1]", out.Data)
	}
}

func TestUpdateMany_JSONServer(t *testing.T) {
	srv := newJSONServer(t)
	p := newProvider(t, srv.URL)

	out, err := p.UpdateMany(t.Context(), posts, dataprovider.UpdateManyParams{
		IDs:  []dataprovider.Identifier{num(1), num(99)},
		Data: dataprovider.Fields{"title": "bulk"},
	})
	if err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}
	if len(out.Data) != 1 || out.Data[0].String() != "1" {
		t.Fatalf("ids = %v, want [1]", out.Data)
	}

	got, err := p.GetOne(t.Context(), posts, dataprovider.GetOneParams{ID: num(1)})
	if err != nil {
		t.Fatalf("GetOne: %v", err)
	}
	if v, _ := got.Data.Get("title"); v != "bulk" {
		t.Errorf("title = %v", v)
	}
}

func TestUpdateMany_AllRejectedIsEmptySuccess(t *testing.T) {
	backend := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	p := newProvider(t, backend.URL)

	out, err := p.UpdateMany(t.Context(), posts, dataprovider.UpdateManyParams{IDs: []dataprovider.Identifier{num(1), num(2)}})
	if err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}
	if len(out.Data) != 0 {
		t.Errorf("ids = %v, want none", out.Data)
	}
}

func TestBatch_TransportErrorFails(t *testing.T) {
	backend := newRecorder(t, func(http.ResponseWriter, *http.Request) {})
	base := backend.URL
	backend.Close()
	p := newProvider(t, base)

	_, err := p.UpdateMany(t.Context(), posts, dataprovider.UpdateManyParams{IDs: []dataprovider.Identifier{num(1)}})
	if !dataprovider.IsTransportError(err) {
		t.Errorf("UpdateMany: expected transport error, got %v", err)
	}
	_, err = p.DeleteMany(t.Context(), posts, dataprovider.DeleteManyParams{IDs: []dataprovider.Identifier{num(1)}})
	if !dataprovider.IsTransportError(err) {
		t.Errorf("DeleteMany: expected transport error, got %v", err)
	}
}

func TestBatch_EmptyIDs(t *testing.T) {
	p := newProvider(t, "http://127.0.0.1:1")
	if _, err := p.UpdateMany(t.Context(), posts, dataprovider.UpdateManyParams{}); !dataprovider.IsUnknownError(err) {
		t.Errorf("UpdateMany: expected precondition error, got %v", err)
	}
	if _, err := p.DeleteMany(t.Context(), posts, dataprovider.DeleteManyParams{}); !dataprovider.IsUnknownError(err) {
		t.Errorf("DeleteMany: expected precondition error, got %v", err)
	}
}

func TestDeleteMany_KeepsCallerOrder(t *testing.T) {
	srv := newJSONServer(t)
	p := newProvider(t, srv.URL)

	ids := []dataprovider.Identifier{num(3), num(42), num(1), num(2)}
	out, err := p.DeleteMany(t.Context(), posts, dataprovider.DeleteManyParams{IDs: ids})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	got := dataprovider.IDStrings(out.Data)
	want := []string{"3", "1", "2"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ids = %v, want %v", got, want)
	}

	list, err := p.GetList(t.Context(), posts, dataprovider.GetListParams{})
	if err != nil {
		t.Fatalf("GetList: %v", err)
	}
	if len(list.Data) != 0 {
		t.Errorf("expected empty collection, got %d records", len(list.Data))
	}
}

func TestDeleteMany_ConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	backend := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		_, _ = w.Write([]byte(`{}`))
	})
	p := newProviderWith(t, Config{URL: backend.URL, Concurrency: 2})

	ids := make([]dataprovider.Identifier, 8)
	for i := range ids {
		ids[i] = num(uint64(i + 1))
	}
	out, err := p.DeleteMany(t.Context(), posts, dataprovider.DeleteManyParams{IDs: ids})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if len(out.Data) != len(ids) {
		t.Errorf("deleted %d ids, want %d", len(out.Data), len(ids))
	}
	if got := peak.Load(); got > 2 {
		t.Errorf("peak in-flight requests = %d, want <= 2", got)
	}
	if got := len(backend.Requests()); got != len(ids) {
		t.Errorf("requests = %d, want %d", got, len(ids))
	}
}
