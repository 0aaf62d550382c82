package domain

import (
	"testing"
)

func TestScopeKey(t *testing.T) {
	if got := ScopeKey("GS1:PIP", "EN"); got != "gs1:pip|en" {
		t.Fatalf("unexpected key %q", got)
	}
	if ScopeKey("A") != ScopeKey("a") {
		t.Fatal("keys must be case-insensitive")
	}
}

func TestStringListScanRoundTrip(t *testing.T) {
	in := StringList{"untp:accessRole#Customs", "untp:accessRole#Logistics"}
	value, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out StringList
	if err := out.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %v", out)
	}

	var fromNil StringList
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if fromNil != nil {
		t.Fatalf("expected nil list, got %v", fromNil)
	}
	if err := out.Scan(42); err == nil {
		t.Fatal("expected error for unsupported source type")
	}
}

func TestLinkRecordVisibility(t *testing.T) {
	public := LinkRecord{}
	if !public.IsPublic() {
		t.Fatal("record without roles should be public")
	}
	restricted := LinkRecord{AccessRole: StringList{"untp:accessRole#Customs"}}
	if restricted.IsPublic() {
		t.Fatal("record with roles should not be public")
	}
	if !restricted.HasAccessRole("untp:accessRole#Customs") {
		t.Fatal("granted role should match")
	}
	if restricted.HasAccessRole("untp:accessRole#Logistics") {
		t.Fatal("ungranted role should not match")
	}
}

func TestLinkRecordListCloneIsDeep(t *testing.T) {
	original := LinkRecordList{
		{LinkID: "l1", AccessRole: StringList{"untp:accessRole#Customs"}},
	}
	clone := original.Clone()
	clone[0].LinkID = "changed"
	clone[0].AccessRole[0] = "changed"

	if original[0].LinkID != "l1" || original[0].AccessRole[0] != "untp:accessRole#Customs" {
		t.Fatalf("clone aliases the original: %+v", original[0])
	}
	if LinkRecordList(nil).Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
}

func TestLinkRecordListActiveOnly(t *testing.T) {
	list := LinkRecordList{
		{LinkID: "a", Active: true},
		{LinkID: "b"},
		{LinkID: "c", Active: true},
	}
	got := list.ActiveOnly()
	if len(got) != 2 || got[0].LinkID != "a" || got[1].LinkID != "c" {
		t.Fatalf("unexpected active subset: %+v", got)
	}
}

func TestFindLink(t *testing.T) {
	rec := IdentifierRecord{
		Links: LinkRecordList{{LinkID: "l1"}, {LinkID: "l2"}},
	}
	if link := rec.FindLink("l2"); link == nil || link.LinkID != "l2" {
		t.Fatalf("expected l2, got %+v", link)
	}
	if rec.FindLink("missing") != nil {
		t.Fatal("expected nil for unknown id")
	}

	// The returned pointer reaches the stored element.
	rec.FindLink("l1").Active = true
	if !rec.Links[0].Active {
		t.Fatal("FindLink should return a pointer into the list")
	}
}

func TestVersionHistoryListScanRoundTrip(t *testing.T) {
	in := VersionHistoryList{
		{Version: 1, Changes: []LinkChange{{LinkID: "l1", Action: ChangeActionCreated}}},
		{Version: 2, Changes: []LinkChange{{LinkID: "l1", Action: ChangeActionUpdated, PreviousTargetURL: "https://v1.example.com"}}},
	}
	value, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var out VersionHistoryList
	if err := out.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 2 || out[1].Changes[0].PreviousTargetURL != "https://v1.example.com" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}
