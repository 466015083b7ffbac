package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	in := `<style>.a{margin:0}</style><h1 id="h.a">One</h1><p>x <b>y</b></p>` +
		`<ul class="l"><li>item</li><li>two<ul><li>nested</li></ul></li></ul>` +
		"<pre type=\"js\">a\n  b</pre>"

	want := `<style>.a{margin:0}</style>
<h1 id="h.a">One</h1>
<p>x <b>y</b></p>
<ul class="l">
  <li>item</li>
  <li>
    two
    <ul>
      <li>nested</li>
    </ul>
  </li>
</ul>
<pre type="js">a
  b</pre>
`
	got, err := String(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestString_Table(t *testing.T) {
	got, err := String(`<table><tbody><tr><td>a</td><td><p>b</p></td></tr></tbody></table>`)
	require.NoError(t, err)

	want := `<table>
  <tbody>
    <tr>
      <td>a</td>
      <td>
        <p>b</p>
      </td>
    </tr>
  </tbody>
</table>
`
	assert.Equal(t, want, got)
}

func TestString_DropsWhitespaceBetweenBlocks(t *testing.T) {
	got, err := String("<p>a</p>\n   \n<p>b</p>")
	require.NoError(t, err)
	assert.Equal(t, "<p>a</p>\n<p>b</p>\n", got)
}

func TestString_PreIsVerbatimWhenNested(t *testing.T) {
	got, err := String("<div><pre type=\"go\">if x {\n\treturn\n}</pre></div>")
	require.NoError(t, err)
	assert.Equal(t, "<div>\n  <pre type=\"go\">if x {\n\treturn\n}</pre>\n</div>\n", got)
}

func TestString_TextAndEmpty(t *testing.T) {
	got, err := String("  hello <tt>x</tt>  ")
	require.NoError(t, err)
	assert.Equal(t, "hello <tt>x</tt>\n", got)

	got, err = String("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestString_EscapesAttributes(t *testing.T) {
	got, err := String(`<div title="a &amp; &quot;b&quot;"><p>x</p></div>`)
	require.NoError(t, err)
	assert.Equal(t, "<div title=\"a &amp; &quot;b&quot;\">\n  <p>x</p>\n</div>\n", got)
}

func TestString_KeepsQuotesLiteral(t *testing.T) {
	got, err := String(`<p><tt>don&#39;t</tt> say &#34;x&#34; &amp; 1 &lt; 2<br>next</p><!-- note -->`)
	require.NoError(t, err)
	assert.Equal(t, "<p><tt>don't</tt> say \"x\" &amp; 1 &lt; 2<br>next</p>\n<!-- note -->\n", got)
}
