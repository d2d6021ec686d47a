package xmldoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Member kinds as they prefix member names.
const (
	KindType     = 'T'
	KindProperty = 'P'
	KindField    = 'F'
	KindMethod   = 'M'
)

// Member is the documentation of one code element.
type Member struct {
	Name    string // full member name without the kind prefix, e.g. Shop.Models.Order.Total
	Kind    byte
	Summary string
	Remarks string
	Returns string
	Example string
	Params  map[string]string
}

// Comments is the merged documentation of one or more files.
type Comments struct {
	Assemblies []string
	members    map[string]*Member // keyed by "K:name"
}

type xmlDoc struct {
	Assembly struct {
		Name string `xml:"name"`
	} `xml:"assembly"`
	Members []xmlMember `xml:"members>member"`
}

type xmlMember struct {
	Name    string     `xml:"name,attr"`
	Summary innerText  `xml:"summary"`
	Remarks innerText  `xml:"remarks"`
	Returns innerText  `xml:"returns"`
	Example innerText  `xml:"example"`
	Params  []xmlParam `xml:"param"`
}

type xmlParam struct {
	Name string `xml:"name,attr"`
	Text string `xml:",innerxml"`
}

// innerText keeps the raw inner XML so inline tags such as <see cref="..."/>
// can be rendered as text.
type innerText string

func (t *innerText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw struct {
		Inner string `xml:",innerxml"`
	}
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	*t = innerText(raw.Inner)
	return nil
}

// New returns empty comments.
func New() *Comments {
	return &Comments{members: map[string]*Member{}}
}

// Load reads one documentation file.
func Load(path string) (*Comments, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// Parse reads documentation XML from r.
func Parse(r io.Reader) (*Comments, error) {
	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	c := New()
	if doc.Assembly.Name != "" {
		c.Assemblies = append(c.Assemblies, doc.Assembly.Name)
	}
	for _, xm := range doc.Members {
		if len(xm.Name) < 3 || xm.Name[1] != ':' {
			continue
		}
		m := &Member{
			Name:    xm.Name[2:],
			Kind:    xm.Name[0],
			Summary: cleanText(string(xm.Summary)),
			Remarks: cleanText(string(xm.Remarks)),
			Returns: cleanText(string(xm.Returns)),
			Example: cleanText(string(xm.Example)),
		}
		if len(xm.Params) > 0 {
			m.Params = make(map[string]string, len(xm.Params))
			for _, p := range xm.Params {
				m.Params[p.Name] = cleanText(p.Text)
			}
		}
		c.members[xm.Name] = m
	}
	return c, nil
}

// Merge adds the members of other; later files win on duplicate names.
func (c *Comments) Merge(other *Comments) {
	if other == nil {
		return
	}
	c.Assemblies = append(c.Assemblies, other.Assemblies...)
	for k, m := range other.members {
		c.members[k] = m
	}
}

// Len returns the number of documented members.
func (c *Comments) Len() int {
	if c == nil {
		return 0
	}
	return len(c.members)
}

// Member returns the member with the exact prefixed name, e.g. "T:Shop.Order".
func (c *Comments) Member(name string) (*Member, bool) {
	if c == nil {
		return nil, false
	}
	m, ok := c.members[name]
	return m, ok
}

var (
	crefTag    = regexp.MustCompile(`<see\s+(?:cref|langword|href)="(?:[A-Z]:)?([^"]+)"\s*/>`)
	paramref   = regexp.MustCompile(`<(?:paramref|typeparamref)\s+name="([^"]+)"\s*/>`)
	anyTag     = regexp.MustCompile(`<[^>]+>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// cleanText renders inline references as their short names and collapses
// whitespace.
func cleanText(s string) string {
	s = crefTag.ReplaceAllStringFunc(s, func(m string) string {
		ref := crefTag.FindStringSubmatch(m)[1]
		if i := strings.Index(ref, "("); i >= 0 {
			ref = ref[:i]
		}
		if i := strings.LastIndex(ref, "."); i >= 0 {
			ref = ref[i+1:]
		}
		return ref
	})
	s = paramref.ReplaceAllString(s, "$1")
	s = anyTag.ReplaceAllString(s, "")
	s = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'", "&amp;", "&").Replace(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
