package store

import (
	"github.com/tipline/tipline/errors"
	"github.com/tipline/tipline/model"
)

// Node returns the settings singleton. ErrUnconfigured means the system has
// not been bootstrapped; callers must not substitute defaults.
func (tx *Tx) Node() (*model.Node, error) {
	var out []*model.Node
	err := tx.list(&model.Node{}, func() any {
		n := &model.Node{}
		out = append(out, n)
		return n
	}, "", "")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Wrap(errors.ErrUnconfigured, "node")
	}
	return out[0], nil
}

// Notification returns the notification settings singleton.
func (tx *Tx) Notification() (*model.Notification, error) {
	var out []*model.Notification
	err := tx.list(&model.Notification{}, func() any {
		n := &model.Notification{}
		out = append(out, n)
		return n
	}, "", "")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Wrap(errors.ErrUnconfigured, "notification")
	}
	return out[0], nil
}

// ApplicationData returns the most recent questionnaire blob version.
func (tx *Tx) ApplicationData() (*model.ApplicationData, error) {
	var out []*model.ApplicationData
	err := tx.list(&model.ApplicationData{}, func() any {
		a := &model.ApplicationData{}
		out = append(out, a)
		return a
	}, "", "version DESC")
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.Wrap(errors.ErrUnconfigured, "applicationdata")
	}
	return out[0], nil
}

// NextCounter increments and returns the named counter, creating it at one
// on first use.
func (tx *Tx) NextCounter(key string) (int, error) {
	c := &model.Counter{}
	err := tx.Get(c, key)
	if errors.IsNotFound(err) {
		c = model.NewCounter(key)
		if err := tx.Add(c); err != nil {
			return 0, err
		}
		return c.Counter, nil
	}
	if err != nil {
		return 0, err
	}

	c.Counter++
	c.UpdateDate = model.Now()
	if err := tx.Save(c); err != nil {
		return 0, err
	}
	return c.Counter, nil
}
