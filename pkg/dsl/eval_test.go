package dsl

import (
	"testing"

	"github.com/rushteam/movietrack/core"
	"github.com/rushteam/movietrack/pkg/utils"
)

func TestEvalEvaluate(t *testing.T) {
	item := core.NewItem(&core.Movie{ID: "m1", Title: "The Matrix", Genre: "Sci-Fi", Year: 1999, Rating: 8.7})
	item.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
	rctx := &core.RecommendContext{UserID: "alice", Params: map[string]any{"policy": "year_asc"}}

	tests := []struct {
		name    string
		expr    string
		want    bool
		wantErr bool
	}{
		{name: "empty expression", expr: "", want: true},
		{name: "year comparison", expr: "movie.year >= 1990", want: true},
		{name: "year comparison false", expr: "movie.year > 2000", want: false},
		{name: "rating and genre", expr: `movie.rating >= 8.0 && movie.genre == "Sci-Fi"`, want: true},
		{name: "id is canonical", expr: `movie.id == "M1"`, want: true},
		{name: "string function", expr: `movie.title.startsWith("The")`, want: true},
		{name: "label access", expr: `label.recall_source == "catalog"`, want: true},
		{name: "params access", expr: `params.policy == "year_asc"`, want: true},
		{name: "user id", expr: `user_id == "alice"`, want: true},
		{name: "syntax error", expr: "movie.year >=", wantErr: true},
		{name: "non bool result", expr: "movie.year + 1", wantErr: true},
		{name: "unknown variable", expr: "foo == 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEval(item, rctx).Evaluate(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvalNilContext(t *testing.T) {
	item := core.NewItem(&core.Movie{ID: "m2", Year: 2001})
	got, err := NewEval(item, nil).Evaluate(`user_id == "" && movie.year == 2001`)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !got {
		t.Error("Evaluate() = false, want true")
	}
}

func TestCompileRejectsInvalid(t *testing.T) {
	if _, err := Compile("movie.year >"); err == nil {
		t.Error("Compile() expected error for incomplete expression")
	}
	if _, err := Compile("movie.year > 1"); err != nil {
		t.Errorf("Compile() error = %v", err)
	}
}
