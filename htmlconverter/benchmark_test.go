package htmlconverter

import "testing"

func BenchmarkConvertHTML(b *testing.B) {
	conv, err := New(Config{})
	if err != nil {
		b.Fatalf("failed to create converter: %v", err)
	}

	input := `<h1>Heading</h1>
<p dir="rtl">This is <strong>bold</strong> text with <a href="https://example.com">link</a>.</p>
<blockquote><p>Quote</p></blockquote>
<ul><li>One</li><li>Two<ol><li>Nested</li></ol></li></ul>
<p><img src="/uploads/a.png" alt="a"></p>
<table><tr><td>A</td><td>1</td></tr></table>`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := conv.Convert(input); err != nil {
			b.Fatalf("convert failed: %v", err)
		}
	}
}
