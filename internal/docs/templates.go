package docs

const variantTemplate = `# {{ .Dataset.Name }}/{{ .Variant.Name }}

{{ if .Variant.Description }}{{ .Variant.Description }}{{ else }}{{ .Dataset.Description }}{{ end }}

{{ if .Dataset.Homepage }}- **Homepage**: [{{ .Dataset.Homepage }}]({{ .Dataset.Homepage }})
{{ end }}{{ if .Variant.Version }}- **Version**: ` + "`{{ .Variant.Version }}`" + `
{{ end }}- **Download size**: {{ size .Variant.DownloadSize }}
- **Dataset size**: {{ size .Variant.DatasetSize }}

## Splits

| Split | Shards | Examples |
|-------|-------:|---------:|
{{ range .Variant.Splits }}| ` + "`{{ .Name }}`" + ` | {{ .NumShards }} | {{ count .NumExamples }} |
{{ end }}
## Feature structure

| Feature | Shape | Dtype |
|---------|-------|-------|
{{ range .Rows }}| ` + "`{{ .Path }}`" + ` | {{ .Shape }} | {{ .DType }} |
{{ end }}
## Examples

<button id="display-examples" onclick="loadExamples(this)">Display examples…</button>
<div id="examples-container"></div>
<script>
function loadExamples(btn) {
  btn.disabled = true;
  var container = document.getElementById('examples-container');
  fetch('{{ .PreviewURL }}')
    .then(function (res) {
      if (!res.ok) { throw new Error('status ' + res.status); }
      return res.text();
    })
    .then(function (html) {
      container.innerHTML = html;
      btn.style.display = 'none';
    })
    .catch(function () {
      container.textContent = 'Examples are currently unavailable.';
      btn.disabled = false;
    });
}
</script>
{{ if .Dataset.Citation }}
## Citation

` + "```bibtex\n{{ .Dataset.Citation }}\n```" + `
{{ end }}`

const datasetIndexTemplate = `# {{ .Name }}

{{ .Description }}

{{ if .Homepage }}- **Homepage**: [{{ .Homepage }}]({{ .Homepage }})
{{ end }}
## Variants

| Variant | Version | Download size | Examples (train) |
|---------|---------|--------------:|-----------------:|
{{ range .Variants }}| [` + "`{{ .Name }}`" + `]({{ .Name }}.html) | {{ .Version }} | {{ size .DownloadSize }} | {{ with .Split "train" }}{{ count .NumExamples }}{{ else }}—{{ end }} |
{{ end }}`

const indexTemplate = `# Dataset Catalog

{{ range $ds := .Datasets }}## [{{ $ds.Name }}]({{ $ds.Name }}/index.html)

{{ $ds.Description }}

{{ range $ds.Variants }}- [` + "`{{ .Name }}`" + `]({{ $ds.Name }}/{{ .Name }}.html)
{{ end }}
{{ end }}`
