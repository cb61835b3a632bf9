package state

import (
	"path/filepath"
	"sync"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"

	"github.com/moodbox/moodbox/hardware/button"
	"github.com/moodbox/moodbox/hardware/lcd"
	"github.com/moodbox/moodbox/hardware/rotary"
	"github.com/moodbox/moodbox/helpers"
	"github.com/moodbox/moodbox/internal/tele"
	"github.com/moodbox/moodbox/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Hardware struct {
		Rotary  rotary.Config `hcl:"rotary"`
		Button  button.Config `hcl:"button"`
		HD44780 struct {      //nolint:maligned
			Enable      bool       `hcl:"enable"`
			Codepage    string     `hcl:"codepage"`
			PinChip     string     `hcl:"pin_chip"`
			Pinmap      lcd.PinMap `hcl:"pinmap"`
			Page1       bool       `hcl:"page1"`
			Width       int        `hcl:"width"`
			ScrollDelay int        `hcl:"scroll_delay"`
		} `hcl:"hd44780"`
		Framebuffer struct {
			Enable bool   `hcl:"enable"`
			Device string `hcl:"device"`
		} `hcl:"framebuffer"`
	} `hcl:"hardware"`

	Tele tele.Config `hcl:"tele"`

	UI struct {
		Front struct {
			TickMs         int    `hcl:"tick_ms"`
			ConfirmSec     int    `hcl:"confirm_sec"`
			MsgPromptName  string `hcl:"msg_prompt_name"`
			MsgPromptClass string `hcl:"msg_prompt_class"`
			MsgPromptMood  string `hcl:"msg_prompt_mood"`
			MsgSubmitted   string `hcl:"msg_submitted"`
		} `hcl:"front"`
		Names        []string `hcl:"names"`
		Classes      []string `hcl:"classes"`
		Moods        []string `hcl:"moods"`
		MoodMessages []string `hcl:"mood_messages"`
	} `hcl:"ui"`

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
