package main

import "testing"

func TestParseBasic(t *testing.T) {
	src, err := parseBasic("Studio=/data/studio,language=Korean,gender=spk1:Female;SPK2:Male,tag=v2")
	if err != nil {
		t.Fatal(err)
	}
	if src.Dataset != "Studio" || src.Root != "/data/studio" || src.Tag != "v2" || src.Load == nil {
		t.Errorf("source = %+v", src)
	}
}

func TestParseAttribute(t *testing.T) {
	if a := parseAttribute("English"); a.Value != "English" || a.BySpeaker != nil {
		t.Errorf("fixed value = %+v", a)
	}
	a := parseAttribute("spk1:Female; SPK2 : Male")
	if a.BySpeaker["SPK1"] != "Female" || a.BySpeaker["SPK2"] != "Male" {
		t.Errorf("table = %+v", a.BySpeaker)
	}
}

func TestParseBasicErrors(t *testing.T) {
	for _, arg := range []string{"", "nolabel", "=path", "x=/p,color=red", "x=/p,language"} {
		if _, err := parseBasic(arg); err == nil {
			t.Errorf("parseBasic(%q) accepted", arg)
		}
	}
}

func TestSourcesSkipsUnsetCorpora(t *testing.T) {
	f := flags{kss: "/data/kss", lj: "/data/lj", basic: []string{"X=/data/x"}}
	got, err := f.sources()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"KSS", "LJ", "X"}
	if len(got) != len(want) {
		t.Fatalf("got %d sources, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Dataset != want[i] {
			t.Errorf("source %d = %s, want %s", i, s.Dataset, want[i])
		}
	}
}
