package landmarks

import "testing"

func collectAttributes(t *testing.T, source string, policy Policy, pos Position) ([]Attribute, Position, bool) {
	t.Helper()
	var attrs []Attribute
	end, selfClosing := scanAttributes(source, policy, pos, func(a Attribute) {
		attrs = append(attrs, a)
	})
	return attrs, end, selfClosing
}

func TestScanAttributes_QuotedAndUnquotedValues(t *testing.T) {
	source := `<a href="x.html" target='_blank' data-n=7 flag>`
	attrs, end, selfClosing := collectAttributes(t, source, XMLPolicy, Position(2))

	if selfClosing {
		t.Fatalf("expected no self-closing marker")
	}
	if end != Position(len(source)) {
		t.Fatalf("end = %d, want %d", end, len(source))
	}

	wantNames := []string{"href", "target", "data-n", "flag"}
	wantValues := []string{"x.html", "_blank", "7", ""}
	if len(attrs) != len(wantNames) {
		t.Fatalf("got %d attributes, want %d: %+v", len(attrs), len(wantNames), attrs)
	}
	for i, a := range attrs {
		if got := a.Name.GetText(source); got != wantNames[i] {
			t.Errorf("attr[%d] name = %q, want %q", i, got, wantNames[i])
		}
		if got := a.Value.GetText(source); got != wantValues[i] {
			t.Errorf("attr[%d] value = %q, want %q", i, got, wantValues[i])
		}
	}
}

func TestScanAttributes_SelfClosingMarker(t *testing.T) {
	source := `<br/>`
	attrs, end, selfClosing := collectAttributes(t, source, XMLPolicy, Position(3))
	if len(attrs) != 0 {
		t.Fatalf("expected no attributes, got %+v", attrs)
	}
	if !selfClosing {
		t.Fatalf("expected self-closing marker to be detected")
	}
	if end != Position(len(source)) {
		t.Fatalf("end = %d, want %d", end, len(source))
	}
}

func TestScanAttributes_TrailingSlashInUnquotedValueIsNotAMarker(t *testing.T) {
	// A "/" that is part of an unquoted value never ends that value early,
	// and therefore never reaches the close-marker check either.
	source := `<a href=a/b>`
	attrs, _, selfClosing := collectAttributes(t, source, XMLPolicy, Position(2))
	if selfClosing {
		t.Fatalf("expected no self-closing marker when / is inside the value")
	}
	if len(attrs) != 1 {
		t.Fatalf("expected one attribute, got %+v", attrs)
	}
	if got := attrs[0].Value.GetText(source); got != "a/b" {
		t.Fatalf("value = %q, want %q", got, "a/b")
	}
}

func TestScanAttributes_UnterminatedQuotedValue(t *testing.T) {
	source := `<a href="never closed`
	attrs, end, selfClosing := collectAttributes(t, source, XMLPolicy, Position(2))
	if selfClosing {
		t.Fatalf("expected no self-closing marker on truncation")
	}
	if end != NPOS {
		t.Fatalf("end = %v, want NPOS", end)
	}
	if len(attrs) != 1 {
		t.Fatalf("expected one (incomplete) attribute, got %+v", attrs)
	}
	if attrs[0].Value.IsComplete() {
		t.Fatalf("expected an incomplete attribute value")
	}
	if attrs[0].All.IsComplete() {
		t.Fatalf("expected an incomplete attribute span")
	}
}

func TestScanAttributes_UnterminatedTag(t *testing.T) {
	source := `<a foo`
	attrs, end, _ := collectAttributes(t, source, XMLPolicy, Position(2))
	if end != NPOS {
		t.Fatalf("end = %v, want NPOS", end)
	}
	if len(attrs) != 1 || attrs[0].Name.GetText(source) != "foo" {
		t.Fatalf("attrs = %+v", attrs)
	}
	if attrs[0].Value.IsComplete() {
		t.Fatalf("expected an incomplete value for a name with no following markup")
	}
}

func TestScanAttributes_NoAttributesJustClose(t *testing.T) {
	source := `<a>`
	attrs, end, selfClosing := collectAttributes(t, source, XMLPolicy, Position(2))
	if len(attrs) != 0 {
		t.Fatalf("expected no attributes, got %+v", attrs)
	}
	if selfClosing {
		t.Fatalf("expected no marker")
	}
	if end != Position(len(source)) {
		t.Fatalf("end = %d, want %d", end, len(source))
	}
}

func TestFindElementNameEnd_TruncatedName(t *testing.T) {
	source := `<a`
	if got := findElementNameEnd(source, XMLPolicy, 1); got != NPOS {
		t.Fatalf("findElementNameEnd = %v, want NPOS", got)
	}
}

func TestXMLPolicy_NameStartRejectsDigitsAndSpace(t *testing.T) {
	source := "<1a> < b>"
	if got := XMLPolicy.GetElementNameStart(source, 1); got != NPOS {
		t.Fatalf("digit-led name should be rejected, got %v", got)
	}
	if got := XMLPolicy.GetElementNameStart(source, 6); got != NPOS {
		t.Fatalf("space right after '<' should be rejected, got %v", got)
	}
}

func TestHTMLPolicy_TagIDIsLowercased(t *testing.T) {
	if got := HTMLPolicy.GetTagID("DIV"); got != TagID("div") {
		t.Fatalf("GetTagID(DIV) = %q, want %q", got, "div")
	}
}

func TestXMLPolicy_TagIDIsCaseSensitive(t *testing.T) {
	if got := XMLPolicy.GetTagID("Div"); got != TagID("Div") {
		t.Fatalf("GetTagID(Div) = %q, want %q", got, "Div")
	}
}

func TestHTMLPolicy_AutocloseBySiblingTableRows(t *testing.T) {
	if !HTMLPolicy.IsAutoclosingSibling("tr", "tr") {
		t.Fatalf("expected tr to autoclose on a sibling tr")
	}
	if !HTMLPolicy.IsAutoclosingSibling("td", "tr") {
		t.Fatalf("expected td to autoclose when a new tr begins")
	}
	if HTMLPolicy.IsAutoclosingSibling("td", "span") {
		t.Fatalf("span should not autoclose an open td")
	}
}

func TestHTMLPolicy_ParagraphClosedByBlockLevelOpener(t *testing.T) {
	if !HTMLPolicy.IsAutoclosingSibling("p", "div") {
		t.Fatalf("expected an open p to close when a div opens")
	}
	if HTMLPolicy.IsAutoclosingSibling("p", "span") {
		t.Fatalf("span is inline and must not close an open p")
	}
}

func TestHTMLPolicy_VoidAndOpaqueSets(t *testing.T) {
	for _, id := range []TagID{"br", "img", "input", "hr"} {
		if !HTMLPolicy.IsVoidElement(id) {
			t.Errorf("expected %q to be void", id)
		}
	}
	for _, id := range []TagID{"script", "style"} {
		if !HTMLPolicy.IsOpaqueElement(id) {
			t.Errorf("expected %q to be opaque", id)
		}
	}
	if HTMLPolicy.IsVoidElement("div") {
		t.Errorf("div must not be void")
	}
	if HTMLPolicy.IsOpaqueElement("div") {
		t.Errorf("div must not be opaque")
	}
}
