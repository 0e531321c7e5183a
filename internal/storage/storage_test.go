package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "docs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreInsertAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	records := []Record{
		{Subset: "train", Group: "sci.space", Name: "2", Text: "orbit"},
		{Subset: "train", Group: "sci.space", Name: "1", Text: "rocket"},
		{Subset: "test", Group: "sci.space", Name: "3", Text: "moon"},
		{Subset: "train", Group: "rec.sport.hockey", Name: "9", Text: "puck"},
	}
	if err := s.Insert(ctx, records); err != nil {
		t.Fatal(err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("Count = %d, want 4", n)
	}

	docs, err := s.Documents(ctx, "train", []string{"sci.space"})
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, d := range docs {
		texts = append(texts, d.Text)
	}
	if !reflect.DeepEqual(texts, []string{"rocket", "orbit"}) {
		t.Errorf("train sci.space = %v, want [rocket orbit]", texts)
	}

	all, err := s.Documents(ctx, "all", []string{"sci.space", "rec.sport.hockey"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("all subsets = %d documents, want 4", len(all))
	}
	if all[0].Group != "rec.sport.hockey" {
		t.Errorf("first group = %q, want rec.sport.hockey", all[0].Group)
	}

	groups, err := s.Groups(ctx, "train")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(groups, []string{"rec.sport.hockey", "sci.space"}) {
		t.Errorf("Groups = %v", groups)
	}
}

func TestStoreInsertReplacesDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	r := Record{Subset: "train", Group: "sci.med", Name: "1", Text: "old"}
	if err := s.Insert(ctx, []Record{r}); err != nil {
		t.Fatal(err)
	}
	r.Text = "new"
	if err := s.Insert(ctx, []Record{r}); err != nil {
		t.Fatal(err)
	}
	docs, err := s.Documents(ctx, "train", []string{"sci.med"})
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Text != "new" {
		t.Errorf("Documents = %+v, want single replaced record", docs)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Count after Reset = %d, want 0", n)
	}
}

func TestStoreNoGroups(t *testing.T) {
	s := openTemp(t)
	docs, err := s.Documents(context.Background(), "train", nil)
	if err != nil || docs != nil {
		t.Errorf("Documents(nil groups) = %v, %v; want nil, nil", docs, err)
	}
}

func TestStoreImportMarker(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	if err := s.Insert(ctx, []Record{{Subset: "train", Group: "sci.med", Name: "1", Text: "dose"}}); err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Imported(ctx); err != nil || ok {
		t.Errorf("Imported before marker = %v, %v; want false, nil", ok, err)
	}
	if err := s.MarkImported(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if ok, err := s.Imported(ctx); err != nil || !ok {
		t.Errorf("Imported after marker = %v, %v; want true, nil", ok, err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Imported(ctx); ok {
		t.Error("Reset should clear the import marker")
	}
}
