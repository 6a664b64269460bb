package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTexts(t *testing.T) {
	doc, err := Parse(`
		<table><tbody>
		<tr>
			<td>  予約中
			</td>
			<td>本館<br>メール</td>
			<td><div>2024/05/01</div><div>予約順位</div><span>3</span></td>
			<td><script>var x = 1;</script>   </td>
		</tr>
		</tbody></table>`)
	require.NoError(t, err)

	got := Texts(doc.Find("td"))
	assert.Equal(t, []string{
		"予約中",
		"本館\nメール",
		"2024/05/01\n予約順位\n3",
		"",
	}, got)
}

func TestInnerTextCollapsesWhitespace(t *testing.T) {
	doc, err := Parse(`<p>Go   プログラミング
		入門</p>`)
	require.NoError(t, err)

	assert.Equal(t, "Go プログラミング 入門", InnerText(doc.Find("p").Nodes[0]))
}
