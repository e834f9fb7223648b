package locale

import "testing"

func TestLoadArabicCatalog(t *testing.T) {
	msgs, err := Load("ar")
	if err != nil {
		t.Fatalf("Load(ar) error = %v", err)
	}
	if msgs.Language != "ar" {
		t.Fatalf("Language = %q", msgs.Language)
	}
	if msgs.Success != "success" {
		t.Fatalf("Success = %q", msgs.Success)
	}
	if msgs.UnsafeQuery != "الاستعلام غير آمن ولا يمكن تنفيذه" {
		t.Fatalf("UnsafeQuery = %q", msgs.UnsafeQuery)
	}
	if msgs.ExecutionFailed != "حدث خطأ أثناء تنفيذ الاستعلام" {
		t.Fatalf("ExecutionFailed = %q", msgs.ExecutionFailed)
	}
	if msgs.NoData != "لا توجد بيانات متاحة لهذا الطلب" {
		t.Fatalf("NoData = %q", msgs.NoData)
	}
}

func TestLoadEnglishCatalog(t *testing.T) {
	msgs, err := Load("en")
	if err != nil {
		t.Fatalf("Load(en) error = %v", err)
	}
	if msgs.Language != "en" {
		t.Fatalf("Language = %q", msgs.Language)
	}
	if msgs.NoData == "" || msgs.InternalError == "" || msgs.NotReady == "" {
		t.Fatal("english catalog has empty messages")
	}
}

func TestLoadUnknownLanguageFallsBackToArabic(t *testing.T) {
	msgs, err := Load("fr")
	if err != nil {
		t.Fatalf("Load(fr) error = %v", err)
	}
	if msgs.Language != "ar" {
		t.Fatalf("Language = %q, want fallback ar", msgs.Language)
	}
}
