package config

// RedactedValue replaces secrets in a redacted Config
const RedactedValue = "********"

// Redacted returns a deep copy of c with API keys and passwords replaced
// by RedactedValue. Empty secrets stay empty.
func (c *Config) Redacted() *Config {
	out := &Config{}
	if c.Regions != nil {
		out.Regions = make(map[string]Region, len(c.Regions))
		for name, r := range c.Regions {
			r.APIKey = redact(r.APIKey)
			out.Regions[name] = r
		}
	}
	if c.Users != nil {
		out.Users = make(map[string]User, len(c.Users))
		for name, u := range c.Users {
			u.Password = redact(u.Password)
			if u.IsAdmin != nil {
				admin := *u.IsAdmin
				u.IsAdmin = &admin
			}
			out.Users[name] = u
		}
	}
	if c.Images != nil {
		out.Images = c.Images.clone()
	}
	return out
}

func (i *Images) clone() *Images {
	out := &Images{}
	if i.Source != nil {
		src := *i.Source
		if i.Source.Selections != nil {
			src.Selections = make(map[string]Selection, len(i.Source.Selections))
			for name, s := range i.Source.Selections {
				src.Selections[name] = Selection{
					Releases: append([]string(nil), s.Releases...),
					Arches:   append([]string(nil), s.Arches...),
				}
			}
		}
		out.Source = &src
	}
	if i.Custom != nil {
		out.Custom = make(map[string]CustomImage, len(i.Custom))
		for name, img := range i.Custom {
			out.Custom[name] = img
		}
	}
	return out
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return RedactedValue
}
