package improve

import (
	"bytes"
	"html/template"
	"strings"
)

var skeletonTmpl = template.Must(template.New("skeleton").Parse(`<h1>{{.}}</h1>

<div class="summary">
  <p>{{.}} offers [key feature 1], [key feature 2] and [key feature 3] for [category].</p>
  <p>[main use case or target customer]</p>
  <p>[core value proposition or differentiator]</p>
</div>

<h2>Key features</h2>
<ul>
  <li><strong>USP 1:</strong> [first key feature]</li>
  <li><strong>USP 2:</strong> [second key feature]</li>
  <li><strong>USP 3:</strong> [third key feature]</li>
  <li><strong>USP 4:</strong> [fourth key feature]</li>
  <li><strong>USP 5:</strong> [fifth key feature]</li>
</ul>

<h2>Specifications</h2>
<ul>
  <li><strong>Spec 1:</strong> [detail]</li>
  <li><strong>Spec 2:</strong> [detail]</li>
  <li><strong>Spec 3:</strong> [detail]</li>
</ul>

<h2>Frequently asked questions</h2>
<h3>Q1: [question 1]</h3>
<p>A: [answer 1]</p>

<h3>Q2: [question 2]</h3>
<p>A: [answer 2]</p>

<h3>Q3: [question 3]</h3>
<p>A: [answer 3]</p>

<div class="cta-section">
  <button class="btn-primary">Buy now</button>
  <a href="/contact">Contact us</a>
</div>
`))

// Skeleton renders a copy-paste HTML outline with every structure the
// content checks look for. An empty product name uses a placeholder.
func Skeleton(product string) string {
	product = strings.TrimSpace(product)
	if product == "" {
		product = "Product name"
	}
	var buf bytes.Buffer
	if err := skeletonTmpl.Execute(&buf, product); err != nil {
		return ""
	}
	return buf.String()
}
