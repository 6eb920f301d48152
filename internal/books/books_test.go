package books

import "testing"

func TestByCode(t *testing.T) {
	b, ok := ByCode("jhn")
	if !ok {
		t.Fatal("ByCode(jhn) not found")
	}
	if b.Name != "John" || b.Number != 44 {
		t.Errorf("ByCode(jhn) = %+v, want John/44", b)
	}

	if _, ok := ByCode("XXX"); ok {
		t.Error("ByCode(XXX) should not resolve")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 66 {
		t.Fatalf("All() returned %d books, want 66", len(all))
	}
	if all[0].Code != "GEN" || all[65].Code != "REV" {
		t.Errorf("All() canon order wrong: first=%s last=%s", all[0].Code, all[65].Code)
	}
}

func TestFromUSFMPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{"numbered filename", "en_ult/44-JHN.usfm", "JHN", true},
		{"bare code", "JHN.usfm", "JHN", true},
		{"lowercase", "en_ult/01-gen.usfm", "GEN", true},
		{"numeric book code", "09-1SA.usfm", "1SA", true},
		{"underscore separator", "en_ult_TIT.usfm", "TIT", true},
		{"unknown code", "99-ZZZ.usfm", "", false},
		{"unrelated file", "manifest.yaml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := FromUSFMPath(tt.path)
			if ok != tt.ok {
				t.Fatalf("FromUSFMPath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && b.Code != tt.want {
				t.Errorf("FromUSFMPath(%q) = %s, want %s", tt.path, b.Code, tt.want)
			}
		})
	}
}

func TestFromNotesPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{"tn convention", "en_tn/tn_JHN.tsv", "JHN", true},
		{"numbered convention", "en_tn/44-JHN.tsv", "JHN", true},
		{"directory segment", "en_tn/JHN/notes.tsv", "JHN", true},
		{"repo-prefixed name", "en_tn_43-LUK.tsv", "LUK", true},
		{"front excluded", "en_tn/tn_front.tsv", "", false},
		{"front directory excluded", "en_tn/front/intro.tsv", "", false},
		{"unknown", "en_tn/tn_ZZZ.tsv", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := FromNotesPath(tt.path)
			if ok != tt.ok {
				t.Fatalf("FromNotesPath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && b.Code != tt.want {
				t.Errorf("FromNotesPath(%q) = %s, want %s", tt.path, b.Code, tt.want)
			}
		})
	}
}
