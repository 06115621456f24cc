package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
)

func sampleCourses() []model.Course {
	return []model.Course{
		{ID: "c1", Title: "Tuscany by Rail", CreatorName: "Ada", Price: 2400},
		{ID: "c2", Title: "Walking the Camino", CreatorName: "Ben", Price: 3600},
		{ID: "c3", Title: "Rail Journeys of Japan", CreatorName: "Ada", Price: 1200},
	}
}

func titles(cs []model.Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterCourses(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		creator string
		wantIDs []string
	}{
		{name: "no filters returns all", wantIDs: []string{"c1", "c2", "c3"}},
		{name: "query matches title", query: "rail", wantIDs: []string{"c1", "c3"}},
		{name: "query matches creator", query: "ben", wantIDs: []string{"c2"}},
		{name: "query is case-insensitive and trimmed", query: "  CAMINO ", wantIDs: []string{"c2"}},
		{name: "creator filter", creator: "ada", wantIDs: []string{"c1", "c3"}},
		{name: "creator and query combine", creator: "ada", query: "japan", wantIDs: []string{"c3"}},
		{name: "no matches", query: "zzz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterCourses(sampleCourses(), tt.query, tt.creator)
			assert.Equal(t, tt.wantIDs, titles(got))
		})
	}
}

func TestSortCourses(t *testing.T) {
	tests := []struct {
		name    string
		sortBy  string
		wantIDs []string
	}{
		{name: "default keeps repo order", sortBy: "", wantIDs: []string{"c1", "c2", "c3"}},
		{name: "price ascending", sortBy: "price-asc", wantIDs: []string{"c3", "c1", "c2"}},
		{name: "price descending", sortBy: "price-desc", wantIDs: []string{"c2", "c1", "c3"}},
		{name: "title", sortBy: "title", wantIDs: []string{"c3", "c1", "c2"}},
		{name: "unknown sort keeps repo order", sortBy: "bogus", wantIDs: []string{"c1", "c2", "c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := sampleCourses()
			sortCourses(cs, tt.sortBy)
			assert.Equal(t, tt.wantIDs, titles(cs))
		})
	}
}
