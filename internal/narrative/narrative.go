// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package narrative renders the descriptive text of a DSpace collection
// from an ArchivesSpace resource.
package narrative

import (
	_ "embed"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bentley-historical-library/collectionsync/archivesspace"
	coreerrors "github.com/bentley-historical-library/collectionsync/core/errors"
	"github.com/bentley-historical-library/collectionsync/dspace"
)

var logger = loggo.GetLogger("collectionsync.narrative")

// Placeholders recognised in the introductory text template.
const (
	TitlePlaceholder            = "TITLE_PLACEHOLDER"
	CategoryPlaceholder         = "RECORD_GROUP_OR_MANUSCRIPT_COLLECTION"
	CollectionNumberPlaceholder = "COLLECTION_NUMBER_PLACEHOLDER"
	AbstractPlaceholder         = "ABSTRACT_PLACEHOLDER"
	BiographyPlaceholder        = "HISTORY_OR_BIOGRAPHY_PLACEHOLDER"
	HandlePlaceholder           = "COLLECTION_HANDLE_PLACEHOLDER"
)

// CopyrightText is the copyright statement of every synchronized
// collection.
const CopyrightText = `<h2>Please note:</h2><p>Copyright has been transferred to the Regents of the University of Michigan.</p><br /><br /><p>Access to digitized sound recordings may be limited to the reading room of the <a href="http://bentley.umich.edu/">Bentley Historical Library</a>, located on the Ann Arbor campus of the University of Michigan.</p>`

// LicenseText is the deposit license of every synchronized collection.
const LicenseText = `As the designated coordinator for this Deep Blue Collection, I am authorized by the Community members to serve as their representative in all dealings with the Repository. As the designee, I ensure that I have read the Deep Blue policies. Furthermore, I have conveyed to the community the terms and conditions outlined in those policies, including the language of the standard deposit license quoted below and that the community members have granted me the authority to deposit content on their behalf.`

//go:embed introductory_text.txt
var defaultTemplate string

// Renderer fills the introductory text template from a resource.
type Renderer struct {
	template string
}

// NewRenderer returns a renderer for the given template text.
func NewRenderer(template string) *Renderer {
	return &Renderer{template: template}
}

// DefaultRenderer returns a renderer for the built in template.
func DefaultRenderer() *Renderer {
	return NewRenderer(defaultTemplate)
}

// LoadRenderer returns a renderer for the template at path, or the built in
// template if path is empty.
func LoadRenderer(path string) (*Renderer, error) {
	if path == "" {
		return DefaultRenderer(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "reading narrative template")
	}
	logger.Debugf("using narrative template %s", path)
	return NewRenderer(string(data)), nil
}

// Render returns the introductory text for resource. The handle placeholder
// is left in place, the handle only exists once the collection is created.
func (r *Renderer) Render(resource archivesspace.Resource) (string, error) {
	abstract, err := abstractOf(resource)
	if err != nil {
		return "", errors.Trace(err)
	}
	biography, err := biographyOf(resource)
	if err != nil {
		return "", errors.Trace(err)
	}

	replacements := []string{
		TitlePlaceholder, resource.Title,
		CollectionNumberPlaceholder, collectionNumber(resource.EADID),
		AbstractPlaceholder, abstract,
		BiographyPlaceholder, strings.ReplaceAll(biography, "\n\n", "</p><p>"),
	}
	switch resource.Level {
	case archivesspace.LevelRecordGroup:
		replacements = append(replacements, CategoryPlaceholder, "record group")
	case archivesspace.LevelCollection:
		replacements = append(replacements, CategoryPlaceholder, "manuscript collection")
	default:
		logger.Warningf("resource level %q is neither a record group nor a collection", resource.Level)
	}
	return strings.NewReplacer(replacements...).Replace(r.template), nil
}

// Collection returns the DSpace collection fields for resource.
func (r *Renderer) Collection(resource archivesspace.Resource) (dspace.Collection, error) {
	text, err := r.Render(resource)
	if err != nil {
		return dspace.Collection{}, errors.Trace(err)
	}
	return dspace.Collection{
		Name:             cases.Title(language.English).String(resource.Title),
		IntroductoryText: text,
		CopyrightText:    CopyrightText,
		License:          LicenseText,
	}, nil
}

// ResolveHandle substitutes the collection handle into rendered text.
func ResolveHandle(text, handle string) string {
	return strings.ReplaceAll(text, HandlePlaceholder, handle)
}

// collectionNumber returns the last component of an EAD identifier such as
// um-bhl-85101, splitting at most twice.
func collectionNumber(eadID string) string {
	parts := strings.SplitN(eadID, "-", 3)
	return parts[len(parts)-1]
}

func abstractOf(resource archivesspace.Resource) (string, error) {
	note, ok := firstNote(resource, archivesspace.NoteAbstract)
	if !ok || len(note.Content) == 0 {
		return "", errors.Annotatef(coreerrors.TemplateDataError, "resource %q has no abstract", resource.Title)
	}
	return note.Content[0], nil
}

func biographyOf(resource archivesspace.Resource) (string, error) {
	note, ok := firstNote(resource, archivesspace.NoteBioghist)
	if !ok || len(note.Subnotes) == 0 {
		return "", errors.Annotatef(coreerrors.TemplateDataError, "resource %q has no biographical or historical note", resource.Title)
	}
	return note.Subnotes[0].Content, nil
}

func firstNote(resource archivesspace.Resource, noteType string) (archivesspace.Note, bool) {
	for _, note := range resource.Notes {
		if note.Type == noteType {
			return note, true
		}
	}
	return archivesspace.Note{}, false
}
