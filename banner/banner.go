// Package banner serializa o script auto-contido que renderiza o aviso de
// desconto na página do cliente.
package banner

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"paridade/models"
)

// Data é a entrada já resolvida da renderização.
type Data struct {
	Customization     models.ProductCustomization
	CountryName       string
	Coupon            string
	Percentage        float64 // fração em [0,1]
	CanRemoveBranding bool
	BrandingURL       string
}

// Message aplica os placeholders {country}/{coupon}/{discount} na mensagem do
// tenant. O desconto sai como percentual inteiro (0.37 -> "37").
func Message(template, countryName, coupon string, percentage float64) string {
	r := strings.NewReplacer(
		models.PLACEHOLDER_COUNTRY, countryName,
		models.PLACEHOLDER_COUPON, coupon,
		models.PLACEHOLDER_DISCOUNT, strconv.Itoa(int(math.Round(percentage*100))),
	)
	return r.Replace(template)
}

// Script monta o javascript que cria o container do banner e insere no seletor
// configurado. O HTML entra no script como literal JSON: é isso que escapa
// aspas/quebras de linha e mantém o inline seguro.
func Script(d Data) string {
	html := bannerHTML(d)
	htmlLit, _ := json.Marshal(html)
	selectorLit, _ := json.Marshal(d.Customization.BannerContainer)

	var b strings.Builder
	b.WriteString("(function(){")
	b.WriteString("var banner=document.createElement(\"div\");")
	fmt.Fprintf(&b, "banner.innerHTML=%s;", htmlLit)
	fmt.Fprintf(&b, "var target=document.querySelector(%s);", selectorLit)
	b.WriteString("if(target){target.prepend.apply(target,banner.children);}")
	b.WriteString("})();")
	return b.String()
}

func bannerHTML(d Data) string {
	c := d.Customization

	prefix := "paridade"
	if c.ClassPrefix != nil && strings.TrimSpace(*c.ClassPrefix) != "" {
		prefix = strings.TrimSpace(*c.ClassPrefix)
	}

	position := "static"
	if c.IsSticky {
		position = "sticky"
	}
	style := fmt.Sprintf(
		"position:%s;top:0;left:0;right:0;z-index:2147483647;display:flex;flex-direction:column;gap:.25em;padding:.5em 1em;text-align:center;background-color:%s;color:%s;font-size:%s;font-family:inherit;",
		position, c.BackgroundColor, c.TextColor, c.FontSize,
	)

	// LocationMessage é HTML do tenant (aceita <b> etc.), então entra como está;
	// os valores substituídos nos placeholders são escapados antes.
	message := Message(
		c.LocationMessage,
		htmlEscape(d.CountryName),
		htmlEscape(d.Coupon),
		d.Percentage,
	)

	var b strings.Builder
	fmt.Fprintf(&b, "<div class=%q style=%q>", prefix+"-container "+prefix+"-sticky-"+strconv.FormatBool(c.IsSticky), style)
	fmt.Fprintf(&b, "<span class=%q>%s</span>", prefix+"-message", message)
	if !d.CanRemoveBranding {
		url := d.BrandingURL
		if url == "" {
			url = "https://paridade.app"
		}
		fmt.Fprintf(&b, "<a class=%q style=%q href=%q target=\"_blank\">Powered by Paridade</a>",
			prefix+"-branding", "color:inherit;font-size:.75em;opacity:.8;", url)
	}
	b.WriteString("</div>")
	return b.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}
